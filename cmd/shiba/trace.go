package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sarchlab/shiba/recording"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace [run-name]",
	Short: "Inspect a recorded run database.",
	Long: "`trace [run-name]` lists the tables of a recorded run. " +
		"With --table, it dumps the content of one table. The run name " +
		"defaults to the SHIBA_RUN environment variable.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runName := os.Getenv("SHIBA_RUN")
		if len(args) > 0 {
			runName = args[0]
		}

		if runName == "" {
			log.Fatal("Error: no run name given and SHIBA_RUN is not set.")
		}

		reader, err := recording.NewReader(runName)
		if err != nil {
			log.Fatalf("Error opening run database: %v", err)
		}
		defer reader.Close()

		tableName, _ := cmd.Flags().GetString("table")
		if tableName == "" {
			listTables(reader)
			return
		}

		dumpTable(reader, tableName)
	},
}

func listTables(reader *recording.Reader) {
	tables, err := reader.ListTables()
	if err != nil {
		log.Fatalf("Error listing tables: %v", err)
	}

	for _, t := range tables {
		fmt.Println(t)
	}
}

func dumpTable(reader *recording.Reader, tableName string) {
	columns, rows, err := reader.Dump(tableName)
	if err != nil {
		log.Fatalf("Error dumping table %s: %v", tableName, err)
	}

	fmt.Println(strings.Join(columns, "\t"))
	for _, row := range rows {
		fmt.Println(strings.Join(row, "\t"))
	}
}

func init() {
	traceCmd.Flags().String("table", "", "dump the content of one table")
	rootCmd.AddCommand(traceCmd)
}
