package cmds

import (
	"math/big"
	"strings"

	"github.com/go-delve/leb128/pkg/logflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the command tree built by New with args and closes the log
// destination once the command returns, successfully or not.
func Execute(root *cobra.Command, args []string) error {
	defer logflags.Close()
	if cmd, _, err := root.Find(args); err == nil && cmd.Name() == "encode" {
		args = integersAfterDash(cmd, args)
	}
	root.SetArgs(args)
	return root.Execute()
}

// integersAfterDash moves the integer arguments of encode behind a "--",
// in their original order, so that pflag does not read a negative number
// such as -1 as a shorthand flag. Values of flags that take one stay next
// to their flag.
func integersAfterDash(cmd *cobra.Command, args []string) []string {
	var rest, ints []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			ints = append(ints, args[i+1:]...)
			i = len(args)
		case isInteger(arg):
			ints = append(ints, arg)
		default:
			rest = append(rest, arg)
			if takesValue(cmd, arg) && i+1 < len(args) {
				i++
				rest = append(rest, args[i])
			}
		}
	}
	if len(ints) == 0 {
		return rest
	}
	return append(append(rest, "--"), ints...)
}

func isInteger(arg string) bool {
	_, ok := new(big.Int).SetString(arg, 0)
	return ok
}

func takesValue(cmd *cobra.Command, arg string) bool {
	if !strings.HasPrefix(arg, "-") || strings.Contains(arg, "=") {
		return false
	}
	var flag *pflag.Flag
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags()} {
		if strings.HasPrefix(arg, "--") {
			flag = fs.Lookup(arg[2:])
		} else if len(arg) == 2 {
			flag = fs.ShorthandLookup(arg[1:])
		}
		if flag != nil {
			break
		}
	}
	return flag != nil && flag.NoOptDefVal == ""
}
