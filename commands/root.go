package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-campus-client/internal/config"
	"github.com/penwyp/go-campus-client/internal/core/api"
	"github.com/penwyp/go-campus-client/internal/presentation/formatter"
	"github.com/penwyp/go-campus-client/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrUnsuccessful is returned after the envelope is printed when the call did not succeed.
var ErrUnsuccessful = errors.New("request was not successful")

const defaultLogFile = "~/.campus-client/logs/client.log"

type identifierFlags struct {
	campus      string
	roll        string
	authen      string
	semester    string
	week        string
	year        string
	date        string
	newsType    string
	username    string
	rateID      string
	rateValue   string
	rateComment string
	jsonBody    bool
}

type cliOptions struct {
	// Logging related
	debug   bool
	logFile string

	// Configuration
	envFile string
	timeout time.Duration

	// Output related
	output string

	ids identifierFlags
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "campus-client [command]",
		Short: "Signed client for the campus mobile backend",
		Long: `campus-client calls the campus mobile backend with hourly HMAC-signed requests and prints
the normalized response envelope.

Configuration is read from the environment, seeded from a .env file.

Examples:
  campus-client balance --campus APHL --roll HE150001 --authen TOKEN
  campus-client marks --campus APHL --roll HE150001 --semester Fall2026 --output json
  campus-client survey --username student@example.com
  campus-client campuses`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()

	// Configuration
	pf.StringVar(&opts.envFile, "env-file", "",
		"Env file to load before reading configuration (default: ./.env when present)")
	pf.DurationVar(&opts.timeout, "timeout", 0,
		"HTTP timeout, overrides HTTP_TIMEOUT (e.g., 10s)")

	// Output configuration
	pf.StringVarP(&opts.output, "output", "o", "",
		"Output format (table, json); defaults to table on a terminal and json otherwise")

	// System and debugging
	pf.BoolVar(&opts.debug, "debug", false,
		"Enable debug logging to stderr")
	pf.StringVar(&opts.logFile, "log-file", defaultLogFile,
		"Log file path (empty disables file logging)")

	// Identifiers shared by the operation commands
	pf.StringVar(&opts.ids.campus, "campus", "", "Campus code")
	pf.StringVar(&opts.ids.roll, "roll", "", "Student roll number")
	pf.StringVar(&opts.ids.authen, "authen", "", "Caller auth token (default: AUTHEN_KEY)")
	pf.StringVar(&opts.ids.semester, "semester", "", "Semester name")
	pf.StringVar(&opts.ids.week, "week", "", "Week number")
	pf.StringVar(&opts.ids.year, "year", "", "Year")
	pf.StringVar(&opts.ids.date, "date", "", "Date value for week lookup")
	pf.StringVar(&opts.ids.newsType, "type", "", "News type")
	pf.StringVar(&opts.ids.username, "username", "", "Survey username (lower-cased and trimmed)")
	pf.StringVar(&opts.ids.rateID, "rate-id", "", "Rating id")
	pf.StringVar(&opts.ids.rateValue, "rate-value", "", "Rating value")
	pf.StringVar(&opts.ids.rateComment, "rate-comment", "", "Rating comment")
	pf.BoolVar(&opts.ids.jsonBody, "json-body", false, "Send add-rate parameters as a JSON body")

	for _, op := range operations {
		cmd.AddCommand(newOperationCmd(opts, op))
	}
	cmd.AddCommand(newChecksumCmd(opts))

	return cmd
}

// Execute runs the CLI; an interrupt cancels the in-flight request.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// setup initializes logging and loads the configuration.
func (o *cliOptions) setup() (*config.Config, error) {
	logLevel := "info"
	if o.debug {
		logLevel = "debug"
	}

	logFile := ""
	if o.logFile != "" {
		logFile = expandPath(o.logFile)
		if err := ensureDir(filepath.Dir(logFile)); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if err := util.InitLogger(logLevel, logFile, o.debug, util.FormatText); err != nil {
		return nil, err
	}

	cfg, err := config.Load(o.envFile)
	if err != nil {
		util.LogErrorf("Failed to load configuration: %v", err)
		return nil, err
	}
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, err
	}
	util.LogInfof("Loaded configuration: %s", cfg)
	return cfg, nil
}

// newClient builds an API client from the loaded configuration and flags.
func (o *cliOptions) newClient(cfg *config.Config) (*api.Client, error) {
	var clientOpts []api.Option
	if o.timeout > 0 {
		clientOpts = append(clientOpts, api.WithTimeout(o.timeout))
	}
	if o.ids.jsonBody {
		clientOpts = append(clientOpts, api.WithRatingJSONBody())
	}
	return api.New(cfg, clientOpts...)
}

// render writes resp in the selected format.
func (o *cliOptions) render(w io.Writer, resp api.Response) error {
	tty := isTerminal(w)
	name := o.output
	if name == "" {
		name = formatter.FormatJSON
		if tty {
			name = formatter.FormatTable
		}
	}

	var f formatter.Formatter
	if strings.EqualFold(name, formatter.FormatTable) {
		f = formatter.NewTableFormatter(formatter.WithColor(tty))
	} else {
		var err error
		if f, err = formatter.New(name); err != nil {
			return err
		}
	}
	return f.Format(w, resp)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
