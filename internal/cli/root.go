package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/riceyield/internal/advice"
	"github.com/alexanderramin/riceyield/internal/llm"
	"github.com/alexanderramin/riceyield/internal/predict"
)

// App holds configuration and collaborators shared by all commands.
type App struct {
	PredictConfig predict.Config
	AdviceConfig  llm.LLMConfig
	Version       string

	// LogOutput receives structured logs. Nil discards them.
	LogOutput io.Writer
	// LogToTerminal marks LogOutput as the terminal; the form then logs
	// nowhere.
	LogToTerminal bool

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Predictor and Advisor replace the HTTP-backed defaults when set.
	Predictor predict.Predictor
	Advisor   advice.Advisor
}

// NewRootCmd creates the top-level "riceyield" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "riceyield",
		Short:         "Rice yield prediction with agronomic advice",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runForm(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&app.PredictConfig.Endpoint, "predict-endpoint", app.PredictConfig.Endpoint,
		"Base URL of the prediction service")
	root.PersistentFlags().StringVar(&app.AdviceConfig.Endpoint, "advice-endpoint", app.AdviceConfig.Endpoint,
		"Base URL of the generative advice service")

	root.AddCommand(
		newFormCmd(app),
		newPredictCmd(app),
		newStubModelCmd(app),
		newVersionCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logOutput() io.Writer {
	if a.LogOutput == nil {
		return io.Discard
	}
	return a.LogOutput
}

func (a *App) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(a.logOutput(), nil))
}

func (a *App) predictor() predict.Predictor {
	if a.Predictor != nil {
		return a.Predictor
	}
	return predict.NewHTTPClient(a.PredictConfig, a.logger())
}

// advisor builds the advice service. With advice disabled every call
// returns the fallback text.
func (a *App) advisor() advice.Advisor {
	if a.Advisor != nil {
		return a.Advisor
	}
	if !a.AdviceConfig.Enabled {
		return advice.NewService(nil, a.logger())
	}

	var observer llm.Observer = llm.NoopObserver{}
	if a.AdviceConfig.LogCalls {
		observer = llm.NewLogObserver(a.logOutput())
	}
	return advice.NewService(llm.NewGeminiClient(a.AdviceConfig, observer), a.logger())
}
