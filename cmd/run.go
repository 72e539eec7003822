package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/parley/internal/app"
	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/memorymatch"
	"github.com/abhisek/parley/internal/speech"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	closeLog, err := setupFileLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
	} else {
		defer closeLog()
	}

	provider, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	demo, _ := cmd.Flags().GetBool("demo")
	rec, syn := speechFromEnv(demo)

	return app.Run(app.Options{
		Provider:    provider,
		Recognizer:  rec,
		Synthesizer: syn,
		EventRepo:   st.EventRepo(),
		Shuffler:    shufflerFromFlags(cmd),
	})
}

// shufflerFromFlags returns a seeded shuffler when --seed is set, so a
// memory game deal can be replayed. Nil keeps the random default.
func shufflerFromFlags(cmd *cobra.Command) memorymatch.Shuffler {
	seed, _ := cmd.Flags().GetUint64("seed")
	if seed == 0 {
		return nil
	}
	return memorymatch.NewSeededShuffler(seed)
}

// loadCatalog loads --catalog when set, else the built-in catalog.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	dir, _ := cmd.Flags().GetString("catalog")
	if dir == "" {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("load built-in catalog: %w", err)
		}
		return c, nil
	}
	c, err := catalog.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", dir, err)
	}
	return c, nil
}

// speechFromEnv builds the speech backends. An explicit
// PARLEY_SPEECH_PROVIDER wins, then OPENAI_API_KEY is probed. A
// misconfigured provider falls back to dictation so practice still works.
func speechFromEnv(demo bool) (speech.Recognizer, speech.Synthesizer) {
	cfg := speech.ConfigFromEnv()
	switch {
	case demo:
		cfg.Provider = speech.ProviderDemo
	case os.Getenv("PARLEY_SPEECH_PROVIDER") == "":
		if discovered, ok := speech.DiscoverConfig(); ok {
			discovered.RecordCommand = cfg.RecordCommand
			discovered.PlayCommand = cfg.PlayCommand
			cfg = discovered
		}
	}

	rec, syn, err := speech.NewFromConfig(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Speech provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Speaking practice will use typed dictation.")
		return speech.NewDictationRecognizer(), speech.Unsupported{}
	}
	return rec, syn
}
