package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront/internal/adminops"
	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/compare"
	"storefront/internal/httpx"
	"storefront/internal/orders"
	"storefront/internal/reviews"
	"storefront/internal/state"
	"storefront/internal/support"
)

var (
	// Global flags
	apiURL     string
	stateDir   string
	verbose    bool
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - terminal client for the store API",
	Long: `Storefront is a terminal client for the store backend.

Features:
  - Browse and filter products, with plain-English queries ("electronics under $50")
  - Session-scoped cart and checkout
  - Side-by-side product comparison with an automatic top-3 pick
  - Reviews with helpful votes, FAQ, support tickets, and a chat assistant
  - Admin console: product CRUD, image uploads, URL import, moderation`,
	Version: "1.2.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Store API base URL (default $STOREFRONT_API_URL or http://localhost:8000/api)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Directory for the durable profile (default $STOREFRONT_STATE_DIR or ~/.storefront)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stderr)), level)

	return zap.New(core).Sugar(), nil
}

// app wires the shared client, durable profile, and domain stores for one
// command invocation.
type app struct {
	logger  *zap.SugaredLogger
	profile *state.Store
	client  *httpx.Client
	images  catalog.ImageResolver

	catalog *catalog.APIStore
	cart    *cart.Flow
	reviews *reviews.APIStore
	voter   *reviews.Widget
	support *support.APIStore
	chat    *support.Chat
	engine  *compare.Engine
	console *adminops.Console
	account *auth.Client
}

func newApp() (*app, error) {
	logger, err := NewLogger()
	if err != nil {
		return nil, err
	}

	base := apiURL
	if base == "" {
		base = os.Getenv("STOREFRONT_API_URL")
	}
	if base == "" {
		base = "http://localhost:8000/api"
	}

	dir := stateDir
	if dir == "" {
		dir = os.Getenv("STOREFRONT_STATE_DIR")
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving state dir: %w", err)
		}
		dir = filepath.Join(home, ".storefront")
	}

	profile, err := state.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening profile: %w", err)
	}

	client := httpx.NewClient(base, logger)
	client.SetAdminKeyProvider(profile.AdminKey)

	catalogStore := catalog.NewAPIStore(client, catalog.NewCache(profile), logger)
	cartStore := cart.NewAPIStore(client)
	orderStore := orders.NewAPIStore(client)
	reviewStore := reviews.NewAPIStore(client)
	supportStore := support.NewAPIStore(client)

	return &app{
		logger:  logger,
		profile: profile,
		client:  client,
		images:  catalog.KeywordResolver{},
		catalog: catalogStore,
		cart:    cart.NewFlow(cartStore, orderStore, profile),
		reviews: reviewStore,
		voter:   reviews.NewWidget(reviewStore, profile, logger),
		support: supportStore,
		chat:    support.NewChat(supportStore),
		engine:  compare.NewEngine(catalogStore),
		console: adminops.NewConsole(client, profile, logger),
		account: auth.NewClient(client),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
