package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/cognicore/topictrans/internal/fixture"
	"github.com/cognicore/topictrans/pkg/topictrans"
	"github.com/cognicore/topictrans/pkg/topictrans/config"
	"github.com/cognicore/topictrans/pkg/topictrans/store"
	"github.com/cognicore/topictrans/pkg/topictrans/store/memstore"
	"github.com/cognicore/topictrans/pkg/topictrans/store/sqlite"
)

type topicSummary struct {
	Topic int                    `json:"topic"`
	Words []topictrans.WordScore `json:"words"`
}

type report struct {
	RunID      string         `json:"run_id"`
	ModelID    string         `json:"model_id"`
	Vocabulary int            `json:"vocabulary"`
	Topics     []topicSummary `json:"topics"`
}

func main() {
	var (
		dbPath     = flag.String("db", "topictrans.db", "SQLite database path")
		configPath = flag.String("config", "", "Translation config YAML")
		weightsA   = flag.String("weights-a", "", "Override source language weights YAML")
		weightsB   = flag.String("weights-b", "", "Override target language weights YAML")
		modelID    = flag.String("model", "", "Stored model ID to translate")
		dictName   = flag.String("dict", "", "Stored dictionary name")
		top        = flag.Int("top", 10, "Words per topic in the summary")
		normalize  = flag.Bool("normalize", false, "Normalize translated topics to sum 1")
		listRuns   = flag.Int("runs", 0, "List the N most recent runs and exit")
		demo       = flag.Bool("demo", false, "Translate the built-in aviation sample in memory")
		jsonOut    = flag.Bool("json", false, "Print the summary as JSON")
		verbose    = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	loader := config.Loader{
		TranslatePath: *configPath,
		WeightsAPath:  *weightsA,
		WeightsBPath:  *weightsB,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	var st store.Store
	if *demo {
		st = memstore.New()
	} else {
		st, err = sqlite.OpenSQLite(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
	}

	engine := topictrans.New(topictrans.Options{
		Store:  st,
		Config: components.Translate,
		Logger: logger,
	})
	defer engine.Close()

	if *listRuns > 0 {
		runs, err := engine.Runs(ctx, *listRuns)
		if err != nil {
			log.Fatalf("list runs: %v", err)
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  %s -> %s  %s  topics=%d vocabulary=%d  %s\n",
				r.StartedAt.Format("2006-01-02 15:04:05"), r.ID, r.SourceModelID, r.ResultModelID,
				r.Voting, r.Topics, r.Vocabulary, r.Duration)
		}
		return
	}

	if *demo {
		if err := engine.ImportDictionary(ctx, "aviation", fixture.DictionaryWithMeta()); err != nil {
			log.Fatalf("import demo dictionary: %v", err)
		}
		id, err := engine.ImportModel(ctx, fixture.Model())
		if err != nil {
			log.Fatalf("import demo model: %v", err)
		}
		*modelID, *dictName = id, "aviation"
	}

	if *modelID == "" {
		log.Fatal("--model required")
	}
	if *dictName == "" {
		log.Fatal("--dict required")
	}

	res, err := engine.Run(ctx, topictrans.RunRequest{
		ModelID:    *modelID,
		Dictionary: *dictName,
		Normalize:  *normalize,
	})
	if err != nil {
		log.Fatalf("translate: %v", err)
	}

	rep := report{RunID: res.RunID, ModelID: res.ModelID, Vocabulary: res.Model.Vocabulary().Len()}
	for t := 0; t < res.Model.TopicCount(); t++ {
		rep.Topics = append(rep.Topics, topicSummary{Topic: t, Words: topictrans.TopWords(res.Model, t, *top)})
	}

	if *jsonOut {
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			log.Fatalf("encode report: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("Run %s -> model %s (%d words)\n", rep.RunID, rep.ModelID, rep.Vocabulary)
	for _, ts := range rep.Topics {
		parts := make([]string, len(ts.Words))
		for i, w := range ts.Words {
			parts[i] = fmt.Sprintf("%s:%.4f", w.Word, w.Score)
		}
		fmt.Printf("Topic %d: %s\n", ts.Topic, strings.Join(parts, ", "))
	}
}
