package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName           = "filefusion"
	envPrefix         = "FILEFUSION"
	defaultOutputFile = "combined_files.txt"
)

// Options is the resolved configuration of one run: defaults, then the config
// file, then FILEFUSION_* environment variables, then flags.
type Options struct {
	Root          string
	Include       []string
	Exclude       []string
	MaxSizeBytes  int64
	IncludeBinary bool
	Output        string
	Format        string
	Comment       string
	Recursive     bool
	Workers       int
	MaxDepth      int
	GitIgnore     bool
	SkipHidden    bool
	ErrorsShown   int

	Tokens    bool
	Tokenizer TokenizerConfig

	Tree        bool
	Clipboard   bool
	PDF         string
	Interactive bool

	LogLevel   string
	NoColor    bool
	NoProgress bool
}

// usageError marks an invalid flag or config value.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// defineFlags registers every flag on cmd and binds it into v under its
// snake_case key.
func defineFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.Flags()

	f.StringP("path", "p", ".", "Directory to combine (or a git URL)")
	f.StringP("include", "i", "", "Comma-separated extensions to include (e.g. py,go)")
	f.StringP("exclude", "e", "", "Comma-separated extensions to exclude")
	f.Int64P("max-size", "s", 0, "Maximum file size in KB (0 for no limit)")
	f.Bool("include-binary", false, "Process files that look binary")

	f.StringP("output", "o", defaultOutputFile, "Output file")
	f.StringP("format", "f", FormatText, "Output format: text, md or html")
	f.Int("comment-style", 2, "Comment style for text output: 1 for //, 2 for #")

	f.Bool("recursive", true, "Descend into subdirectories")
	f.Bool("no-recursive", false, "Only combine files directly inside the root")
	f.IntP("workers", "w", 0, "Number of worker goroutines (0 for auto)")
	f.Int("max-depth", 0, "Maximum directory depth to traverse (0 for no limit)")
	f.Bool("gitignore", false, "Respect the root .gitignore")
	f.Bool("skip-hidden", false, "Skip hidden files and directories")
	f.Int("errors-shown", 5, "Number of errors listed in the summary")

	f.Bool("tokens", false, "Count tokens of the combined files")
	f.String("tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	f.String("model", "", "Model name for the tokenizer (e.g. gpt-4o, gpt2)")
	f.String("tokenizer-file", "", "Path to a local tokenizer.json")

	f.Bool("tree", false, "Print a tree of the combined files")
	f.BoolP("clipboard", "c", false, "Also copy the document to the clipboard")
	f.String("pdf", "", "Also export the combined files as a PDF")
	f.Bool("interactive", false, "Pick the directory with a fuzzy finder")

	f.String("config", "", "Config file (default $HOME/.config/filefusion/config.toml)")
	f.String("log-level", "warn", "Log level: debug, info, warn or error")
	f.Bool("no-color", false, "Disable colored output")
	f.Bool("no-progress", false, "Disable the progress bar")

	f.VisitAll(func(fl *pflag.Flag) {
		if fl.Name == "config" {
			return
		}
		_ = v.BindPFlag(strings.ReplaceAll(fl.Name, "-", "_"), fl)
	})
}

// initConfig points v at the config file and environment. A missing config
// file is not an error. It returns the config file used, if any.
func initConfig(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", usagef("error reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// loadOptions resolves and validates the run options. args are the positional
// arguments; a positional PATH wins over --path.
func loadOptions(v *viper.Viper, args []string) (Options, error) {
	opts := Options{
		Root:          v.GetString("path"),
		Include:       extensionList(v, "include"),
		Exclude:       extensionList(v, "exclude"),
		IncludeBinary: v.GetBool("include_binary"),
		Output:        v.GetString("output"),
		Recursive:     v.GetBool("recursive") && !v.GetBool("no_recursive"),
		Workers:       v.GetInt("workers"),
		MaxDepth:      v.GetInt("max_depth"),
		GitIgnore:     v.GetBool("gitignore"),
		SkipHidden:    v.GetBool("skip_hidden"),
		ErrorsShown:   v.GetInt("errors_shown"),
		Tokens:        v.GetBool("tokens"),
		Tokenizer: TokenizerConfig{
			Type:  v.GetString("tokenizer"),
			Model: v.GetString("model"),
			File:  v.GetString("tokenizer_file"),
		},
		Tree:        v.GetBool("tree"),
		Clipboard:   v.GetBool("clipboard"),
		PDF:         v.GetString("pdf"),
		Interactive: v.GetBool("interactive"),
		LogLevel:    v.GetString("log_level"),
		NoColor:     v.GetBool("no_color"),
		NoProgress:  v.GetBool("no_progress"),
	}
	if len(args) > 0 {
		opts.Root = args[0]
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Output == "" {
		opts.Output = defaultOutputFile
	}

	format, err := normalizeFormat(v.GetString("format"))
	if err != nil {
		return Options{}, &usageError{err: err}
	}
	opts.Format = format

	comment, err := commentToken(v.GetInt("comment_style"))
	if err != nil {
		return Options{}, &usageError{err: err}
	}
	opts.Comment = comment

	maxKB := v.GetInt64("max_size")
	switch {
	case maxKB < 0:
		return Options{}, usagef("--max-size must not be negative, got %d", maxKB)
	case opts.Workers < 0:
		return Options{}, usagef("--workers must not be negative, got %d", opts.Workers)
	case opts.MaxDepth < 0:
		return Options{}, usagef("--max-depth must not be negative, got %d", opts.MaxDepth)
	case opts.ErrorsShown < 0:
		return Options{}, usagef("--errors-shown must not be negative, got %d", opts.ErrorsShown)
	}
	opts.MaxSizeBytes = maxKB * 1024
	if opts.Workers == 0 {
		opts.Workers = defaultWorkers()
	}
	return opts, nil
}

// extensionList reads a key that may hold a comma-separated string (flag, env)
// or a list (config file).
func extensionList(v *viper.Viper, key string) []string {
	return parseExtensions(strings.Join(v.GetStringSlice(key), ","))
}

// languageSearchDirs lists where a languages.yml override is looked for.
func languageSearchDirs(root string) []string {
	dirs := []string{root}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", appName))
	}
	return dirs
}
