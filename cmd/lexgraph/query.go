package lexgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexgraph/lexgraph/pkg/config"
	"github.com/lexgraph/lexgraph/pkg/query"
	"github.com/lexgraph/lexgraph/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Answer a single query against a graph snapshot",
	Long: `Answer one natural-language query against a YAML graph snapshot and print
the results. The query type is classified automatically unless --type is
given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

var (
	querySnapshot   string
	queryType       string
	queryMaxResults int
	queryJSON       bool
)

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&querySnapshot, "snapshot", "", "YAML graph snapshot to query (required)")
	queryCmd.Flags().StringVar(&queryType, "type", "", "Query type override (entity, relationship, semantic, document, cross_document, graph_traversal)")
	queryCmd.Flags().IntVar(&queryMaxResults, "max-results", query.DefaultMaxResults, "Maximum number of results")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print the full response as JSON")
	queryCmd.MarkFlagRequired("snapshot")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Store.Driver = "memory"
	cfg.Store.Snapshot = querySnapshot

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	client, err := buildClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	defer client.Close()

	text := strings.Join(args, " ")
	opts := &query.QueryOptions{
		Type:       types.QueryType(queryType),
		MaxResults: queryMaxResults,
	}

	response, err := client.Query(context.Background(), text, opts)
	if err != nil {
		return err
	}

	if queryJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	}

	fmt.Printf("Query type: %s (%d results, %.3fs)\n\n", response.QueryType, response.TotalResults, response.ProcessingTime)
	for i, result := range response.Results {
		fmt.Printf("%2d. [%.2f] %s\n", i+1, result.RelevanceScore, result.Content)
		if result.SourceDocument != "" {
			fmt.Printf("    source: %s\n", result.SourceDocument)
		}
	}
	if len(response.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range response.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}
