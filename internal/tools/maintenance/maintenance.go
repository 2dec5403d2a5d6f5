// Package maintenance implements the suggestion sweep: replay a user's
// events, age out patterns, evaluate the policy battery, and reconcile the
// outcome against stored suggestions.
package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Fordjour12/seila/internal/domain/replay"
	"github.com/Fordjour12/seila/internal/platform/id"
	"github.com/Fordjour12/seila/internal/storage/sqlite"
	"github.com/Fordjour12/seila/internal/suggestion"
)

const sweepReplayPageSize = 200

// Config holds maintenance command configuration.
type Config struct {
	UserID     string
	UserIDs    string
	DBPath     string        `env:"SEILA_DB_PATH"`
	Timeout    time.Duration `env:"SEILA_MAINTENANCE_TIMEOUT" envDefault:"10m"`
	DryRun     bool
	JSONOutput bool
}

type envConfig struct {
	DBPath  string        `env:"SEILA_DB_PATH"`
	Timeout time.Duration `env:"SEILA_MAINTENANCE_TIMEOUT" envDefault:"10m"`
}

// ParseConfig parses env defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		DBPath:  envCfg.DBPath,
		Timeout: envCfg.Timeout,
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "seila.db")
	}

	fs.StringVar(&cfg.UserID, "user-id", "", "user ID to sweep")
	fs.StringVar(&cfg.UserIDs, "user-ids", "", "comma-separated user IDs to sweep")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to sqlite database (default: SEILA_DB_PATH or data/seila.db)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "evaluate and report without writing suggestions")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "output JSON reports")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the maintenance sweep.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	if _, err := resolveUserIDs(cfg.UserID, cfg.UserIDs); err != nil {
		return err
	}

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	return runWithDeps(ctx, cfg, sweepDeps{events: store, suggestions: store, close: store.Close}, out, errOut)
}

// runWithDeps contains the core sweep logic with injectable dependencies. It
// owns the store lifecycle.
func runWithDeps(ctx context.Context, cfg Config, deps sweepDeps, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if deps.close != nil {
		defer func() {
			if err := deps.close(); err != nil {
				fmt.Fprintf(errOut, "Error: close store: %v\n", err)
			}
		}()
	}

	ids, err := resolveUserIDs(cfg.UserID, cfg.UserIDs)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	failed := false
	for _, userID := range ids {
		result := sweepUser(ctx, deps, userID, now, cfg.DryRun)
		if cfg.JSONOutput {
			outputJSON(out, errOut, result)
		} else {
			prefix := ""
			if len(ids) > 1 {
				prefix = fmt.Sprintf("[%s] ", userID)
			}
			printResult(out, errOut, result, prefix)
		}
		if result.Error != "" {
			failed = true
		}
	}
	if failed {
		return errors.New("maintenance failed")
	}
	return nil
}

type sweepDeps struct {
	events      eventStore
	suggestions suggestionStore
	close       func() error
}

type sweepResult struct {
	UserID     string `json:"user_id"`
	QuietDay   bool   `json:"quiet_day"`
	Candidates int    `json:"candidates"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	Dismissed  int    `json:"dismissed"`
	DryRun     bool   `json:"dry_run,omitempty"`
	Error      string `json:"error,omitempty"`
}

// sweepUser runs one user's sweep against a fixed now, which makes re-runs
// with unchanged inputs produce zero writes.
func sweepUser(ctx context.Context, deps sweepDeps, userID string, now time.Time, dryRun bool) sweepResult {
	ctx, span := otel.Tracer("seila/maintenance").Start(ctx, "maintenance.sweepUser",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Bool("sweep.dry_run", dryRun),
		))
	defer span.End()

	result := sweepResult{UserID: userID, DryRun: dryRun}

	state, err := replay.Load(ctx, deps.events, userID, sweepReplayPageSize)
	if err != nil {
		result.Error = fmt.Sprintf("replay state: %v", err)
		return result
	}

	ds := suggestion.Assemble(state, now)
	result.QuietDay = ds.QuietDay
	candidates := suggestion.Evaluate(ds)
	result.Candidates = len(candidates)

	active, err := deps.suggestions.ListActive(ctx, userID)
	if err != nil {
		result.Error = fmt.Sprintf("list active suggestions: %v", err)
		return result
	}

	ops := suggestion.Reconcile(active, candidates, now)
	result.Created = len(ops.Create)
	result.Updated = len(ops.Update)
	result.Dismissed = len(ops.DismissIDs)
	if dryRun || ops.Empty() {
		return result
	}

	for _, suggestionID := range ops.DismissIDs {
		if err := deps.suggestions.Dismiss(ctx, userID, suggestionID); err != nil {
			result.Error = fmt.Sprintf("dismiss suggestion %s: %v", suggestionID, err)
			return result
		}
	}
	for _, sug := range ops.Update {
		if err := deps.suggestions.Put(ctx, sug); err != nil {
			result.Error = fmt.Sprintf("update suggestion %s: %v", sug.ID, err)
			return result
		}
	}
	for _, candidate := range ops.Create {
		suggestionID, err := id.NewID()
		if err != nil {
			result.Error = fmt.Sprintf("new suggestion id: %v", err)
			return result
		}
		sug := suggestion.Suggestion{
			ID:        suggestionID,
			UserID:    userID,
			PolicyID:  candidate.PolicyID,
			Headline:  candidate.Headline,
			Subtext:   candidate.Subtext,
			Action:    candidate.Action,
			Priority:  candidate.Priority,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := deps.suggestions.Put(ctx, sug); err != nil {
			result.Error = fmt.Sprintf("create suggestion for %s: %v", candidate.PolicyID, err)
			return result
		}
	}
	return result
}

func resolveUserIDs(singleID, list string) ([]string, error) {
	if singleID == "" && list == "" {
		return nil, fmt.Errorf("-user-id or -user-ids is required")
	}
	if singleID != "" && list != "" {
		return nil, fmt.Errorf("-user-id cannot be combined with -user-ids")
	}
	if singleID != "" {
		return []string{singleID}, nil
	}
	ids := splitCSV(list)
	if len(ids) == 0 {
		return nil, fmt.Errorf("-user-ids must contain at least one user id")
	}
	return ids, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	output := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		output = append(output, trimmed)
	}
	return output
}

func outputJSON(out io.Writer, errOut io.Writer, result sweepResult) {
	encoded, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintf(errOut, "Error: encode report: %v\n", err)
		return
	}
	fmt.Fprintln(out, string(encoded))
}

func printResult(out io.Writer, errOut io.Writer, result sweepResult, prefix string) {
	if result.Error != "" {
		fmt.Fprintf(errOut, "%sError: %s\n", prefix, result.Error)
		return
	}
	mode := "Swept"
	if result.DryRun {
		mode = "Would sweep"
	}
	if result.QuietDay {
		fmt.Fprintf(out, "%s%s user %s: quiet day, dismissed %d active suggestions\n", prefix, mode, result.UserID, result.Dismissed)
		return
	}
	fmt.Fprintf(out, "%s%s user %s: %d candidates (%d created, %d updated, %d dismissed)\n",
		prefix, mode, result.UserID, result.Candidates, result.Created, result.Updated, result.Dismissed)
}

func openStore(path string) (*sqlite.Store, error) {
	cleanPath := filepath.Clean(path)
	if cleanPath == "." || cleanPath == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}
