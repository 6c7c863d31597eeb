// Package bootstrap wires configuration into the stores, generator, agents and
// janitor shared by the binaries
package bootstrap

import (
	"fmt"
	"log"

	"github.com/ethanbaker/repogen/internal/completion"
	"github.com/ethanbaker/repogen/internal/generator"
	"github.com/ethanbaker/repogen/internal/github"
	"github.com/ethanbaker/repogen/internal/janitor"
	"github.com/ethanbaker/repogen/internal/orchestrator"
	"github.com/ethanbaker/repogen/internal/stores/conversation"
	"github.com/ethanbaker/repogen/internal/stores/generation"
	"github.com/ethanbaker/repogen/pkg/utils"
)

// Stores holds the run ledger and the conversation store
type Stores struct {
	Runs          generation.Store
	Conversations conversation.Store

	closers []func() error
}

// OpenStores connects to MySQL when MYSQL_HOST is set, otherwise it falls back
// to in-memory stores that live as long as the process
func OpenStores(config *utils.Config) (*Stores, error) {
	runs := config.GetIntWithDefault("HISTORY_RUNS", conversation.DefaultRuns)

	dsn, ok := utils.MySQLDSN(config)
	if !ok {
		log.Printf("[BOOTSTRAP]: MYSQL_HOST not set, using in-memory stores")
		return &Stores{
			Runs:          generation.NewInMemoryStore(),
			Conversations: conversation.NewInMemoryStore(runs),
		}, nil
	}

	runStore, err := generation.NewMySqlStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open generation store: %w", err)
	}

	conversationStore, err := conversation.NewMySqlStore(dsn, runs)
	if err != nil {
		runStore.Close()
		return nil, fmt.Errorf("failed to open conversation store: %w", err)
	}

	return &Stores{
		Runs:          runStore,
		Conversations: conversationStore,
		closers:       []func() error{runStore.Close, conversationStore.Close},
	}, nil
}

// Close releases any database connections
func (s *Stores) Close() {
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			log.Printf("[BOOTSTRAP]: Failed to close store: %v", err)
		}
	}
}

// App is every component a binary might need
type App struct {
	*Stores

	Generator    *generator.Generator
	Orchestrator *orchestrator.Orchestrator
	Janitor      *janitor.Janitor
}

// New builds the full component graph from config
func New(config *utils.Config) (*App, error) {
	stores, err := OpenStores(config)
	if err != nil {
		return nil, err
	}

	completer, err := completion.NewClient(completion.ConfigFromEnv(config))
	if err != nil {
		stores.Close()
		return nil, err
	}

	timeout := config.GetDurationWithDefault("REQUEST_TIMEOUT", generator.DefaultTimeout)
	host := github.NewClient(config.GetWithDefault("GITHUB_API_BASE", github.DefaultBaseURL), timeout)

	gen := generator.New(completer, host, generator.ConfigCredential{Config: config},
		generator.WithRecorder(generation.NewRecorder(stores.Runs)),
		generator.WithDefaultOrganization(config.Get("GITHUB_ORG")),
		generator.WithTimeout(timeout),
	)

	prompts := utils.PromptSet{}
	if path := config.Get("PROMPTS_PATH"); path != "" {
		prompts, err = utils.LoadPromptSet(path)
		if err != nil {
			stores.Close()
			return nil, fmt.Errorf("failed to load prompts: %w", err)
		}
	}

	log.Printf("[BOOTSTRAP]: Completion model %s, repository host %s", completer.Model(), host.BaseURL())

	return &App{
		Stores:       stores,
		Generator:    gen,
		Orchestrator: orchestrator.NewDefault(gen, stores.Conversations, prompts, config),
		Janitor:      janitor.NewFromConfig(stores.Runs, config),
	}, nil
}
