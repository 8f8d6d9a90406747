package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/output"
)

// ConnectionCommand returns the connection command group.
func ConnectionCommand() *cli.Command {
	return &cli.Command{
		Name:    "connection",
		Aliases: []string{"conn"},
		Usage:   "Manage saved connections",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Save a server address under a name",
				ArgsUsage: "NAME ADDR",
				Action:    connectionAdd,
			},
			{
				Name:      "remove",
				Usage:     "Delete a saved connection",
				ArgsUsage: "NAME",
				Action:    connectionRemove,
			},
			{
				Name:      "use",
				Usage:     "Switch to a saved connection",
				ArgsUsage: "NAME",
				Action:    connectionUse,
			},
			{
				Name:   "list",
				Usage:  "List saved connections",
				Action: connectionList,
			},
		},
	}
}

func connectionAdd(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: connection add NAME ADDR")
	}
	rt := getRuntime(c)
	name, addr := c.Args().Get(0), c.Args().Get(1)
	rt.cfg.Connections[name] = config.ConnectionConfig{Server: addr}
	if err := config.Save(rt.cfg, rt.configPath); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Saved connection %s (%s)\n", name, addr)
	return nil
}

func connectionRemove(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("connection name required")
	}
	rt := getRuntime(c)
	if _, ok := rt.cfg.Connections[name]; !ok {
		return fmt.Errorf("connection %q not found", name)
	}
	delete(rt.cfg.Connections, name)
	if rt.cfg.CurrentConnection == name {
		rt.cfg.CurrentConnection = ""
	}
	if err := config.Save(rt.cfg, rt.configPath); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Removed connection %s\n", name)
	return nil
}

func connectionUse(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("connection name required")
	}
	rt := getRuntime(c)
	if err := rt.cfg.Use(name); err != nil {
		return err
	}
	if err := config.Save(rt.cfg, rt.configPath); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Switched to connection %s\n", name)
	return nil
}

func connectionList(c *cli.Context) error {
	rt := getRuntime(c)
	names := lo.Keys(rt.cfg.Connections)
	slices.Sort(names)

	list := lo.Map(names, func(name string, _ int) savedConnection {
		return savedConnection{
			Name:    name,
			Server:  rt.cfg.Connections[name].Server,
			Current: name == rt.cfg.CurrentConnection,
		}
	})
	return rt.print(c.App.Writer, savedConnections(list))
}

type savedConnection struct {
	Name    string `json:"name" yaml:"name"`
	Server  string `json:"server" yaml:"server"`
	Current bool   `json:"current" yaml:"current"`
}

type savedConnections []savedConnection

// String lists one connection per line, marking the current one.
func (l savedConnections) String() string {
	if len(l) == 0 {
		return "(no saved connections)"
	}
	lines := lo.Map(l, func(s savedConnection, _ int) string {
		mark := " "
		if s.Current {
			mark = "*"
		}
		return fmt.Sprintf("%s %s\t%s", mark, s.Name, s.Server)
	})
	return strings.Join(lines, "\n")
}

func (l savedConnections) Table() *output.Table {
	table := &output.Table{Headers: []string{"CURRENT", "NAME", "SERVER"}}
	for _, s := range l {
		table.AddRow(lo.Ternary(s.Current, "*", ""), s.Name, s.Server)
	}
	return table
}
