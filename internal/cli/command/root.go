package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

const runtimeKey = "runtime"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "respkv-cli",
		Usage:                "respkv command-line client",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			GetCommand(),
			SetCommand(),
			ConnectionCommand(),
			REPLCommand(),
		},
		Before: before,
		After: func(c *cli.Context) error {
			if rt := getRuntime(c); rt != nil {
				rt.mgr.Disconnect()
			}
			return nil
		},
		Action: replAction,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI profile `FILE` (default ~/.respkv/cli.yaml)",
			EnvVars: []string{"RESPKV_CLI_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address or saved connection name (default 127.0.0.1:6379)",
			EnvVars: []string{config.EnvServer},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: raw, json, yaml, table (default raw)",
			EnvVars: []string{config.EnvOutput},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "dial and request timeout (default 5s)",
			EnvVars: []string{config.EnvTimeout},
		},
	}
}

// runtime is the state shared by every command of one invocation.
type runtime struct {
	cfg        *config.CLIConfig
	configPath string
	server     string
	format     output.Format
	mgr        *connection.Manager
}

func before(c *cli.Context) error {
	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := make(map[string]string)
	for _, name := range []string{"server", "output"} {
		if c.IsSet(name) {
			flags[name] = c.String(name)
		}
	}
	if c.IsSet("timeout") {
		flags["timeout"] = c.Duration("timeout").String()
	}

	merged, err := config.Merge(cfg, nil, flags)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(merged.DefaultOutput)
	if err != nil {
		return err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[runtimeKey] = &runtime{
		cfg:        cfg,
		configPath: path,
		server:     merged.Resolve(merged.Server()),
		format:     format,
		mgr:        connection.NewManager(merged.Timeout),
	}
	return nil
}

func getRuntime(c *cli.Context) *runtime {
	if rt, ok := c.App.Metadata[runtimeKey].(*runtime); ok {
		return rt
	}
	return nil
}

// connect returns the shared client, dialing on first use.
func (rt *runtime) connect(ctx context.Context) (*connection.Client, error) {
	client, err := rt.mgr.Connect(ctx, rt.server)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", rt.server, err)
	}
	return client, nil
}

// print writes a value in the selected format. A nil value prints nothing.
func (rt *runtime) print(w io.Writer, v any) error {
	if v == nil {
		return nil
	}
	return output.NewFormatter(rt.format).Format(w, v)
}
