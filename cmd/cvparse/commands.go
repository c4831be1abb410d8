package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/artem13815/cvpolish/pkg/config"
	"github.com/artem13815/cvpolish/pkg/cvparse"
	"github.com/artem13815/cvpolish/pkg/logging"
	"github.com/artem13815/cvpolish/pkg/render"
	"github.com/artem13815/cvpolish/pkg/resume/textextract"
	"github.com/artem13815/cvpolish/pkg/security/jwt"
)

type parserFlags struct {
	strict  bool
	locales string
	verbose bool
}

func newRootCmd() *cobra.Command {
	var pf parserFlags
	root := &cobra.Command{
		Use:           "cvparse",
		Short:         "Parse résumés into structured records",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&pf.strict, "strict-anchors", false, "Only split entries on dates that start a line")
	root.PersistentFlags().StringVar(&pf.locales, "locales", "", "Path to a YAML locale table replacing the embedded one")
	root.PersistentFlags().BoolVarP(&pf.verbose, "verbose", "v", false, "Log progress to stderr")

	root.AddCommand(
		newParseCmd(&pf),
		newSectionsCmd(&pf),
		newHTMLCmd(&pf),
		newTokenCmd(),
	)
	return root
}

func newParseCmd(pf *parserFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the parsed record as JSON",
		Long:  `Extracts text from a .pdf, .docx or .txt file and prints the structured record.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, text, err := load(cmd, pf, args[0])
			if err != nil {
				return err
			}
			rec := parser.Parse(text)
			if rec.IsEmpty() {
				fmt.Fprintln(cmd.ErrOrStderr(), "nothing recognised: fill the form manually")
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
}

func newSectionsCmd(pf *parserFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sections [file]",
		Short: "Show detected section spans with byte offsets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, text, err := load(cmd, pf, args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SECTION\tSTART\tEND\tPREVIEW")
			for _, sp := range parser.Sections(text).Spans {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", sp.Key, sp.Start, sp.End, preview(sp.Text, 40))
			}
			return w.Flush()
		},
	}
}

func newHTMLCmd(pf *parserFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "html [file]",
		Short: "Render the parsed record as printable HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, text, err := load(cmd, pf, args[0])
			if err != nil {
				return err
			}
			out, err := render.HTML(parser.Parse(text))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		admin   bool
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			role := ""
			if admin {
				role = jwt.RoleAdmin
			}
			gen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
			tok, err := gen.Generate(subject, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "Subject (user id) of the token")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant the admin role")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}

func load(cmd *cobra.Command, pf *parserFlags, path string) (*cvparse.Parser, string, error) {
	level := "warn"
	if pf.verbose {
		level = "debug"
	}
	log := logging.New(cmd.ErrOrStderr(), level, "text")

	var opts []cvparse.Option
	if pf.locales != "" {
		l, err := cvparse.LoadLocales(pf.locales)
		if err != nil {
			return nil, "", err
		}
		opts = append(opts, cvparse.WithLocales(l))
	}
	if pf.strict {
		opts = append(opts, cvparse.WithStrictAnchors())
	}

	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return nil, "", err
	}
	name := path
	if path == "-" {
		name = "stdin.txt"
	}
	text, err := textextract.Extract(name, data)
	if err != nil {
		return nil, "", err
	}
	log.Debug("text extracted", "file", path, "bytes", len(data), "chars", len([]rune(text)))
	return cvparse.New(opts...), text, nil
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "…"
	}
	return s
}
