package cli

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Opt is a single command-line option
type Opt struct {
	DestP interface{} // pointer to the destination

	EnvVar     string
	Flag       string
	Hidden     bool
	Persistent bool
	Required   bool
	Short      rune // using rune b/c it guarantees correctness. a short must always be a string of length one

	Default interface{}
	Desc    string
}

// Program parses CLI options
type Program struct {
	// Run is invoked by cobra on execute.
	Run func() error
	// Name is the name of the program in help usage and the env var prefix.
	Name string
	// Use overrides Name in the usage line, e.g. "sample <distribution>".
	Use string
	// Args validates positional arguments. Defaults to cobra.NoArgs.
	Args cobra.PositionalArgs
	// Opts are the command line/env var options to the program
	Opts []Opt
}

// NewCommand creates a new cobra command to be executed that respects env vars.
//
// Uses the upper-case version of the program's name as a prefix
// to all environment variables.
//
// This is to simplify the viper/cobra boilerplate.
func NewCommand(v *viper.Viper, p *Program) (*cobra.Command, error) {
	use := p.Use
	if use == "" {
		use = p.Name
	}
	args := p.Args
	if args == nil {
		args = cobra.NoArgs
	}
	cmd := &cobra.Command{
		Use:  use,
		Args: args,
		RunE: func(_ *cobra.Command, _ []string) error {
			return p.Run()
		},
	}

	v.SetEnvPrefix(strings.ToUpper(p.Name))
	v.AutomaticEnv()
	// This normalizes "-" to an underscore in env names.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// done before we bind flags to viper keys.
	// order of precedence (1 highest -> 3 lowest):
	//	1. flags
	//  2. env vars
	//	3. config file
	if err := initializeConfig(v); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := BindOptions(v, cmd, p.Opts); err != nil {
		return nil, fmt.Errorf("failed to bind config options: %w", err)
	}

	return cmd, nil
}

func initializeConfig(v *viper.Viper) error {
	configPath := v.GetString("CONFIG_PATH")
	if configPath == "" {
		// Default to looking in the working directory of the running process.
		configPath = "."
	}

	switch strings.ToLower(path.Ext(configPath)) {
	case ".json", ".toml", ".yaml", ".yml":
		v.SetConfigFile(configPath)
	default:
		v.AddConfigPath(configPath)
	}

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// BindOptions adds opts to the specified command and automatically
// registers those options with viper.
func BindOptions(v *viper.Viper, cmd *cobra.Command, opts []Opt) error {
	for _, o := range opts {
		flagset := cmd.Flags()
		if o.Persistent {
			flagset = cmd.PersistentFlags()
		}
		// a value from the environment or a config file satisfies a required flag.
		required := o.Required && !v.IsSet(o.Flag)
		if o.EnvVar != "" {
			if err := v.BindEnv(o.Flag, o.EnvVar); err != nil {
				return fmt.Errorf("failed to bind env var %q: %w", o.EnvVar, err)
			}
			required = required && os.Getenv(o.EnvVar) == ""
		}
		hasShort := o.Short != 0

		switch destP := o.DestP.(type) {
		case *string:
			d, err := cast.ToStringE(defaultOr(o.Default, ""))
			if err != nil {
				return badDefault(o, err)
			}
			if hasShort {
				flagset.StringVarP(destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				flagset.StringVar(destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			*destP = v.GetString(o.Flag)
		case *int:
			d, err := cast.ToIntE(defaultOr(o.Default, 0))
			if err != nil {
				return badDefault(o, err)
			}
			if hasShort {
				flagset.IntVarP(destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				flagset.IntVar(destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			*destP = v.GetInt(o.Flag)
		case *int32:
			// literal numbers are typed as int, so casting is needed here
			d, err := cast.ToInt32E(defaultOr(o.Default, int32(0)))
			if err != nil {
				return badDefault(o, err)
			}
			if hasShort {
				flagset.Int32VarP(destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				flagset.Int32Var(destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			*destP = v.GetInt32(o.Flag)
		case *int64:
			d, err := cast.ToInt64E(defaultOr(o.Default, int64(0)))
			if err != nil {
				return badDefault(o, err)
			}
			if hasShort {
				flagset.Int64VarP(destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				flagset.Int64Var(destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			*destP = v.GetInt64(o.Flag)
		case *uint64:
			d, err := cast.ToUint64E(defaultOr(o.Default, uint64(0)))
			if err != nil {
				return badDefault(o, err)
			}
			if hasShort {
				flagset.Uint64VarP(destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				flagset.Uint64Var(destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			*destP = v.GetUint64(o.Flag)
		case *float64:
			d, err := cast.ToFloat64E(defaultOr(o.Default, 0.0))
			if err != nil {
				return badDefault(o, err)
			}
			if hasShort {
				flagset.Float64VarP(destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				flagset.Float64Var(destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			*destP = v.GetFloat64(o.Flag)
		case *bool:
			d, err := cast.ToBoolE(defaultOr(o.Default, false))
			if err != nil {
				return badDefault(o, err)
			}
			if hasShort {
				flagset.BoolVarP(destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				flagset.BoolVar(destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			*destP = v.GetBool(o.Flag)
		case *time.Duration:
			d, err := cast.ToDurationE(defaultOr(o.Default, time.Duration(0)))
			if err != nil {
				return badDefault(o, err)
			}
			if hasShort {
				flagset.DurationVarP(destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				flagset.DurationVar(destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			*destP = v.GetDuration(o.Flag)
		case *[]string:
			d, err := cast.ToStringSliceE(defaultOr(o.Default, []string{}))
			if err != nil {
				return badDefault(o, err)
			}
			if hasShort {
				flagset.StringSliceVarP(destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				flagset.StringSliceVar(destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			*destP = v.GetStringSlice(o.Flag)
		case *zapcore.Level:
			var d zapcore.Level
			if o.Default != nil {
				var ok bool
				if d, ok = o.Default.(zapcore.Level); !ok {
					return badDefault(o, fmt.Errorf("%v is not a zapcore.Level", o.Default))
				}
			}
			if hasShort {
				LevelVarP(flagset, destP, o.Flag, string(o.Short), d, o.Desc)
			} else {
				LevelVar(flagset, destP, o.Flag, d, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			if err := destP.Set(v.GetString(o.Flag)); err != nil {
				return fmt.Errorf("invalid value for %q: %w", o.Flag, err)
			}
		case pflag.Value:
			if o.Default != nil {
				if err := destP.Set(cast.ToString(o.Default)); err != nil {
					return badDefault(o, err)
				}
			}
			if hasShort {
				flagset.VarP(destP, o.Flag, string(o.Short), o.Desc)
			} else {
				flagset.Var(destP, o.Flag, o.Desc)
			}
			if err := bindPFlag(v, o.Flag, flagset); err != nil {
				return err
			}
			if s := v.GetString(o.Flag); s != "" {
				if err := destP.Set(s); err != nil {
					return fmt.Errorf("invalid value for %q: %w", o.Flag, err)
				}
			}
		default:
			// if you get this error, sorry about that!
			// anyway, go ahead and make a PR and add another type.
			return fmt.Errorf("unknown destination type %T for flag %q", o.DestP, o.Flag)
		}

		if o.Hidden {
			if err := flagset.MarkHidden(o.Flag); err != nil {
				return err
			}
		}
		if required {
			if err := cobra.MarkFlagRequired(flagset, o.Flag); err != nil {
				return err
			}
		}
	}

	return nil
}

func defaultOr(v, fallback interface{}) interface{} {
	if v == nil {
		return fallback
	}
	return v
}

func badDefault(o Opt, err error) error {
	return fmt.Errorf("invalid default for %q: %w", o.Flag, err)
}

func bindPFlag(v *viper.Viper, key string, fs *pflag.FlagSet) error {
	if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
		return fmt.Errorf("failed to bind flag %q: %w", key, err)
	}
	return nil
}
