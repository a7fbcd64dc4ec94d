package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Anthya1104/evenodd-store/internal/evenodd"
	"github.com/Anthya1104/evenodd-store/internal/gendata"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the evenodd command tree: one root command and
// the four subcommand forms of spec section 6. Each RunE validates its
// own arguments and returns before touching any core component on a bad
// argument, per section 4.6.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "evenodd",
		Short: "Fault-tolerant file store using the EVEN-ODD erasure code",
	}

	root.AddCommand(newWriteCmd())
	root.AddCommand(newReadCmd())
	root.AddCommand(newRepairCmd())
	root.AddCommand(newGendataCmd())

	return root
}

func newWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <path> <p>",
		Short: "Stripe a file and distribute it across p+2 unit directories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("write: p must be an integer, got %q: %w", args[1], evenodd.ErrBadArgument)
			}
			return WriteFile(".", args[0], p)
		},
	}
}

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <logical> <out>",
		Short: "Reconstruct a logical file, tolerating up to two missing units",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ReadFile(".", args[0], args[1])
		},
	}
}

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair <k> <u1> [u2]",
		Short: "Rebuild every logical file a lost unit (or pair of units) should hold",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := strconv.Atoi(args[0])
			if err != nil || k < 1 || k > 2 {
				return fmt.Errorf("repair: k must be 1 or 2, got %q: %w", args[0], evenodd.ErrBadArgument)
			}
			if len(args) != 1+k {
				return fmt.Errorf("repair: expected %d unit indices, got %d: %w", k, len(args)-1, evenodd.ErrBadArgument)
			}

			units := make([]int, 0, k)
			for _, a := range args[1:] {
				u, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("repair: unit index must be an integer, got %q: %w", a, evenodd.ErrBadArgument)
				}
				units = append(units, u)
			}
			return RepairUnits(".", units)
		},
	}
}

func newGendataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gendata <bytes> <path> <seed>",
		Short: "Write deterministic pseudo-random test data",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("gendata: bytes must be an integer, got %q: %w", args[0], evenodd.ErrBadArgument)
			}
			seed, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("gendata: seed must be an integer, got %q: %w", args[2], evenodd.ErrBadArgument)
			}
			return gendata.WriteFile(args[1], n, seed)
		},
	}
}

// ExitCode maps a core error kind to a process exit code, per section 7.
// Unrecognized errors (e.g. argument-parsing failures cobra itself
// raises) fall back to a generic nonzero code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, evenodd.ErrBadArgument):
		return 2
	case errors.Is(err, evenodd.ErrAlreadyExists):
		return 3
	case errors.Is(err, evenodd.ErrNotFound):
		return 4
	case errors.Is(err, evenodd.ErrTooManyFailures):
		return 5
	case errors.Is(err, evenodd.ErrCorruptMetadata):
		return 6
	case errors.Is(err, evenodd.ErrIoFailure):
		return 7
	default:
		return 1
	}
}
