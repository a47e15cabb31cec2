package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/picalc/internal/ui"
)

// setCustomUsage configures the flag set with a colored usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// NO_COLOR is honored even before the theme is initialized.
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		fmt.Fprintf(out, "\n%sPi Calculator%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Continuous computation of pi with the Chudnovsky series.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}

			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)

			switch {
			case f.Name == "time-limit" && f.DefValue == NoTimeLimit.String():
				fmt.Fprintf(out, " %s(default none)%s", t.Secondary, t.Reset)
			case f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false":
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEnvironment variables prefixed with %s override unset flags.\n\n", EnvPrefix)
	}
}
