// Command corekbd runs the keyboard firmware's key-processing core
// against a terminal-driven scan source, for development and demos
// without real matrix hardware.
package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/kbfw/corekbd/internal/config"
	corelog "github.com/kbfw/corekbd/internal/log"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := config.CandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("corekbd"),
		kong.Description("Programmable mechanical keyboard key-processing core"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closers, err := corelog.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	var trace corelog.ReportTraceLogger
	switch {
	case cli.Log.RawFile != "":
		f, err := os.OpenFile(cli.Log.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
			trace = corelog.NewReportTrace(nil)
		} else {
			trace = corelog.NewReportTrace(f)
			closers = append(closers, f)
		}
	case cli.Log.Level == "trace":
		trace = corelog.NewReportTrace(os.Stdout)
	default:
		trace = corelog.NewReportTrace(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(trace, (*corelog.ReportTraceLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("COREKBD_CONFIG"); v != "" {
		return v
	}
	return ""
}
