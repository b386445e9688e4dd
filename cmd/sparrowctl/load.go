package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	sparrowdb "github.com/rekki/go-query-db"
	"github.com/rekki/go-query-db/analyzer"
	"github.com/rekki/go-query-db/schema"
	"github.com/rekki/go-query-db/vector"
	"github.com/rekki/go-query-db/wire"
)

// ndjsonDocument is one line of the corpus file: a primary key plus a
// map of field name to raw text, analyzed with analyzer.DefaultAnalyzer
// before indexing.
type ndjsonDocument struct {
	PK     string            `json:"pk"`
	Fields map[string]string `json:"fields"`
}

func newLoadCmd() *cobra.Command {
	var schemaPath string
	var docsPath string
	var queryField string
	var queryTerm string
	var limit int

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a schema and an NDJSON corpus, then run one query",
		Long: `Load reads a YAML field schema, indexes every document in an
NDJSON corpus (one {"pk": ..., "fields": {...}} object per line, field
values as raw text), and runs a single term query against the result,
printing ranked pk/score hits.`,
		Example: "  sparrowctl load --schema schema.yaml --docs corpus.ndjson --field all_text --term sparrow",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := buildDatabase(schemaPath, docsPath)
			if err != nil {
				return err
			}

			hits := runQuery(db, queryField, queryTerm)
			if len(hits) > limit {
				hits = hits[:limit]
			}
			for _, h := range hits {
				fmt.Printf("%s\t%f\n", h.PK, h.Score)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the YAML field schema (required)")
	cmd.Flags().StringVar(&docsPath, "docs", "", "path to the NDJSON document corpus (required)")
	cmd.Flags().StringVar(&queryField, "field", "all_text", "field to query")
	cmd.Flags().StringVar(&queryTerm, "term", "", "term to search for (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum hits to print")
	cmd.MarkFlagRequired("schema")
	cmd.MarkFlagRequired("docs")
	cmd.MarkFlagRequired("term")

	return cmd
}

func buildDatabase(schemaPath, docsPath string) (*sparrowdb.Database, error) {
	schemaFile, err := os.Open(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer schemaFile.Close()

	cfg, err := schema.Load(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	db := sparrowdb.New()
	cfg.Apply(db.Fields())

	docsFile, err := os.Open(docsPath)
	if err != nil {
		return nil, fmt.Errorf("open docs: %w", err)
	}
	defer docsFile.Close()

	scanner := bufio.NewScanner(docsFile)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inserted := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var doc ndjsonDocument
		if err := json.Unmarshal(line, &doc); err != nil {
			slog.Warn("skipping malformed line", "error", err)
			continue
		}

		fieldTokens := make(map[string][]vector.Token, len(doc.Fields))
		for name, text := range doc.Fields {
			fieldTokens[name] = analyzer.DefaultAnalyzer.AnalyzeIndex(text)
		}

		if err := db.Insert(doc.PK, fieldTokens); err != nil {
			slog.Warn("skipping document", "pk", doc.PK, "error", err)
			continue
		}
		inserted++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read docs: %w", err)
	}

	slog.Info("loaded corpus", "documents", inserted)
	return db, nil
}

// runQuery normalizes term the same way DefaultAnalyzer would at
// ingest time, so a query for "Sparrow" finds documents indexed under
// "sparrow".
func runQuery(db *sparrowdb.Database, field, term string) []sparrowdb.Hit {
	normalized := term
	if tokens := analyzer.DefaultAnalyzer.AnalyzeSearch(term); len(tokens) > 0 {
		normalized = tokens[0].Term
	}

	q := wire.QuerySource{Kind: wire.KindTerm, Field: field, Term: normalized}.Resolve(db)
	hits := db.Query(q)

	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits
}
