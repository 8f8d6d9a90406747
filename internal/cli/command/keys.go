package command

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "Check the server is alive",
		ArgsUsage: "[MESSAGE]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return fmt.Errorf("ping takes at most one argument")
			}
			return request(c, append([]string{"PING"}, c.Args().Slice()...))
		},
	}
}

// EchoCommand returns the echo command.
func EchoCommand() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "Echo a message back",
		ArgsUsage: "[MESSAGE]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return fmt.Errorf("echo takes at most one argument")
			}
			return request(c, append([]string{"ECHO"}, c.Args().Slice()...))
		},
	}
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read a key",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: get KEY")
			}
			return request(c, []string{"GET", c.Args().First()})
		},
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Write a key",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "px",
				Usage: "expire after `MS` milliseconds",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "expire after a duration such as 1m30s",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: set KEY VALUE [--px MS | --ttl DURATION]")
			}
			expiry, err := expiryMillis(c)
			if err != nil {
				return err
			}
			args := []string{"SET", c.Args().Get(0), c.Args().Get(1)}
			if expiry >= 0 {
				args = append(args, "PX", strconv.FormatInt(expiry, 10))
			}
			return request(c, args)
		},
	}
}

// expiryMillis returns the requested expiry, or -1 when none was given.
func expiryMillis(c *cli.Context) (int64, error) {
	set := lo.Filter([]string{"px", "ttl"}, func(name string, _ int) bool { return c.IsSet(name) })
	switch {
	case len(set) == 0:
		return -1, nil
	case len(set) > 1:
		return 0, fmt.Errorf("--px and --ttl are mutually exclusive")
	case set[0] == "px":
		if c.Int64("px") < 0 {
			return 0, fmt.Errorf("--px must not be negative")
		}
		return c.Int64("px"), nil
	default:
		ttl := c.Duration("ttl")
		if ttl < 0 {
			return 0, fmt.Errorf("--ttl must not be negative")
		}
		return ttl.Milliseconds(), nil
	}
}

// request runs one request on the shared client and prints the result.
func request(c *cli.Context, args []string) error {
	rt := getRuntime(c)
	client, err := rt.connect(c.Context)
	if err != nil {
		return err
	}
	res, err := Exec(client, args)
	if err != nil {
		rt.mgr.Disconnect()
		return err
	}
	if res == nil {
		return nil
	}
	return rt.print(c.App.Writer, res)
}
