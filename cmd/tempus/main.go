package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tempusgo/tempus"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "tempus",
		Short: "Date and time toolbox",
		Long: `Tempus converts, inspects and rounds date-time values from the
command line, backed by the host's IANA timezone database.

Values are ISO 8601 strings:
  instant          2024-03-10T14:30:00Z
  offset date-time 2024-03-10T14:30:00+05:30
  zoned date-time  2024-03-10T14:30:00+01:00[Europe/Berlin]`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(nowCmd())
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(roundCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tempus:", err)
		os.Exit(1)
	}
}

func nowCmd() *cobra.Command {
	var zone string
	var format string
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if zone == "" {
				return printInstant(tempus.Now(), format)
			}
			zdt, err := tempus.NowIn(zone)
			if err != nil {
				return err
			}
			return printZoned(zdt, format)
		},
	}
	cmd.Flags().StringVar(&zone, "zone", "", "IANA zone to report in (default UTC)")
	cmd.Flags().StringVar(&format, "format", "iso", "output format: iso, rfc3339, rfc2822")
	return cmd
}

func convertCmd() *cobra.Command {
	var zone string
	var offset string
	var format string
	cmd := &cobra.Command{
		Use:   "convert VALUE",
		Short: "Convert a value to another zone or offset",
		Long: `Convert re-expresses an instant, offset date-time or zoned date-time
in another timezone or fixed offset. The exact moment is preserved; only
the wall-clock reading changes.

Example:
  tempus convert 2024-03-10T14:30:00Z --zone Asia/Kolkata
  tempus convert "2024-03-10T14:30:00+01:00[Europe/Berlin]" --offset +00:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (zone == "") == (offset == "") {
				return fmt.Errorf("exactly one of --zone and --offset is required")
			}
			instant, err := parseMoment(args[0])
			if err != nil {
				return err
			}
			if zone != "" {
				zdt, err := instant.InTZ(zone)
				if err != nil {
					return err
				}
				return printZoned(zdt, format)
			}
			secs, err := parseOffsetFlag(offset)
			if err != nil {
				return err
			}
			odt, err := instant.InOffset(secs)
			if err != nil {
				return err
			}
			return printOffset(odt, format)
		},
	}
	cmd.Flags().StringVar(&zone, "zone", "", "target IANA zone")
	cmd.Flags().StringVar(&offset, "offset", "", "target fixed offset, e.g. +05:30")
	cmd.Flags().StringVar(&format, "format", "iso", "output format: iso, rfc3339, rfc2822")
	return cmd
}

func inspectCmd() *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:   "inspect ZONE",
		Short: "Dump a zone's offset transitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := tempus.TZCache().Load(args[0])
			if err != nil {
				return err
			}
			lo, err := yearStart(from)
			if err != nil {
				return err
			}
			hi, err := yearStart(to + 1)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", table.ID())
			n := 0
			for _, tr := range table.Transitions() {
				at, err := tempus.InstantFromUnixSeconds(tr.At)
				if err != nil || at.Compare(lo) < 0 || at.Compare(hi) >= 0 {
					continue
				}
				fmt.Printf("  %s  ->  %s\n", at.FormatCommonISO(), offsetString(tr.Offset))
				n++
			}
			if n == 0 {
				fmt.Println("  no transitions in range")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 2020, "first year to show")
	cmd.Flags().IntVar(&to, "to", 2030, "last year to show")
	return cmd
}

func roundCmd() *cobra.Command {
	var unit, mode string
	var increment int
	cmd := &cobra.Command{
		Use:   "round VALUE",
		Short: "Round a value to a unit boundary",
		Long: `Round snaps an instant, offset date-time or zoned date-time to the
nearest increment of a unit.

Example:
  tempus round 2024-03-10T14:47:31Z --unit minute --increment 15
  tempus round "2024-03-10T14:47:31+01:00[Europe/Berlin]" --unit hour --mode floor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseUnit(unit)
			if err != nil {
				return err
			}
			m, err := parseMode(mode)
			if err != nil {
				return err
			}
			src := args[0]
			if strings.Contains(src, "[") {
				zdt, err := tempus.ParseZonedDateTimeCommonISO(src)
				if err != nil {
					return err
				}
				if zdt, err = zdt.Round(u, increment, m); err != nil {
					return err
				}
				fmt.Println(zdt)
				return nil
			}
			odt, err := tempus.ParseOffsetDateTimeCommonISO(src)
			if err != nil {
				return err
			}
			if odt, err = odt.Round(u, increment, m); err != nil {
				return err
			}
			fmt.Println(odt)
			return nil
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "second", "unit: nanosecond .. hour, day")
	cmd.Flags().IntVar(&increment, "increment", 1, "increment of the unit")
	cmd.Flags().StringVar(&mode, "mode", "half-even", "half-even, ceil, floor, half-ceil, half-floor")
	return cmd
}

// parseMoment accepts any of the exact-moment syntaxes and reduces the
// value to its instant.
func parseMoment(src string) (tempus.Instant, error) {
	if strings.Contains(src, "[") {
		zdt, err := tempus.ParseZonedDateTimeCommonISO(src)
		if err != nil {
			return tempus.Instant{}, err
		}
		return zdt.ToInstant(), nil
	}
	odt, err := tempus.ParseOffsetDateTimeCommonISO(src)
	if err != nil {
		return tempus.Instant{}, err
	}
	return odt.ToInstant(), nil
}

func parseOffsetFlag(s string) (int, error) {
	odt, err := tempus.ParseOffsetDateTimeCommonISO("2000-01-01T00:00:00" + s)
	if err != nil {
		return 0, fmt.Errorf("bad offset %q", s)
	}
	return odt.Offset(), nil
}

func parseUnit(s string) (tempus.Unit, error) {
	switch strings.ToLower(s) {
	case "nanosecond", "ns":
		return tempus.UnitNanosecond, nil
	case "microsecond", "us":
		return tempus.UnitMicrosecond, nil
	case "millisecond", "ms":
		return tempus.UnitMillisecond, nil
	case "second", "s":
		return tempus.UnitSecond, nil
	case "minute", "m":
		return tempus.UnitMinute, nil
	case "hour", "h":
		return tempus.UnitHour, nil
	case "day", "d":
		return tempus.UnitDay, nil
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}

func parseMode(s string) (tempus.RoundMode, error) {
	switch strings.ToLower(s) {
	case "half-even", "half_even":
		return tempus.HalfEven, nil
	case "ceil":
		return tempus.Ceil, nil
	case "floor":
		return tempus.Floor, nil
	case "half-ceil", "half_ceil":
		return tempus.HalfCeil, nil
	case "half-floor", "half_floor":
		return tempus.HalfFloor, nil
	}
	return 0, fmt.Errorf("unknown rounding mode %q", s)
}

func printInstant(i tempus.Instant, format string) error {
	switch format {
	case "iso":
		fmt.Println(i.FormatCommonISO())
	case "rfc3339":
		fmt.Println(i.FormatRFC3339())
	case "rfc2822":
		fmt.Println(i.FormatRFC2822())
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func printZoned(zdt tempus.ZonedDateTime, format string) error {
	if format == "iso" {
		fmt.Println(zdt)
		return nil
	}
	return printOffset(zdt.ToOffset(), format)
}

func printOffset(odt tempus.OffsetDateTime, format string) error {
	var s string
	var err error
	switch format {
	case "iso":
		s = odt.FormatCommonISO()
	case "rfc3339":
		s, err = odt.FormatRFC3339()
	case "rfc2822":
		s, err = odt.FormatRFC2822()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

func yearStart(year int) (tempus.Instant, error) {
	d, err := tempus.NewDate(year, 1, 1)
	if err != nil {
		return tempus.Instant{}, fmt.Errorf("year out of range: %d", year)
	}
	return d.At(tempus.Midnight).AssumeUTC().ToInstant(), nil
}

func offsetString(secs int32) string {
	sign := "+"
	if secs < 0 {
		sign, secs = "-", -secs
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, secs/3600, secs%3600/60)
}
