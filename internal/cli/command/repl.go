package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/repl"
)

// REPLCommand returns the repl command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start interactive mode",
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}
	rt := getRuntime(c)

	historyFile := rt.cfg.HistoryFile
	if historyFile == "" {
		historyFile = config.DefaultHistoryPath()
	}

	r := repl.New(replExecutor{rt: rt},
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithHistory(repl.NewHistory(historyFile)),
	)
	return r.Run(c.Context)
}

type replExecutor struct {
	rt *runtime
}

// Execute sends one REPL line to the server over the shared connection.
// The connection is dropped after a failure so the next line redials.
func (e replExecutor) Execute(ctx context.Context, args []string, w io.Writer) error {
	client, err := e.rt.connect(ctx)
	if err != nil {
		return err
	}
	res, err := Exec(client, args)
	if err != nil {
		e.rt.mgr.Disconnect()
		return err
	}
	if res == nil {
		return nil
	}
	return e.rt.print(w, res)
}
