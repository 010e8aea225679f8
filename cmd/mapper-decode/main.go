package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arkieguy/RAK4631-Helium-Mapper/pkg/mapper"
)

var (
	rootCmd = &cobra.Command{
		Use:   "mapper-decode",
		Short: "Decode RAK4631 Helium mapper uplinks",
		Long: `mapper-decode decodes GPS tracker uplinks produced by the RAK4631
Helium mapper firmware and builds test payloads from NMEA sentences.

Every flag can also be set through the environment with the MAPPER_ prefix,
for example MAPPER_FORMAT=v1.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	decodeCmd = &cobra.Command{
		Use:   "decode [payload]",
		Short: "Decode a hex or base64 payload",
		Long:  "decode prints the fields of one payload, or of every line read from stdin when no payload is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := decodeConfigFromViper()
			if err := cfg.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if len(args) == 0 {
				return runInteractive(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
			}
			return runDecode(ctx, cmd.OutOrStdout(), cfg, args[0])
		},
	}

	encodeCmd = &cobra.Command{
		Use:   "encode [sentence...]",
		Short: "Build a payload from NMEA sentences",
		Long:  "encode packs a GGA/RMC/VTG fix the way the tracker firmware does and prints the payload as hex. Sentences are read from stdin when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := args
			if len(lines) == 0 {
				var err error
				if lines, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return runEncode(cmd.OutOrStdout(), lines, viper.GetFloat64("battery"))
		},
	}

	formatsCmd = &cobra.Command{
		Use:   "formats",
		Short: "List supported payload formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range mapper.Formats() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
)

func init() {
	viper.SetEnvPrefix("mapper")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	decodeCmd.Flags().Int("port", 1, "port the uplink arrived on (reserved, does not change decoding)")
	decodeCmd.Flags().StringP("format", "f", "v2", "payload format: v1|legacy|v2|packed")
	decodeCmd.Flags().Bool("strict", false, "reject payloads shorter than 15 bytes instead of zero-filling")
	decodeCmd.Flags().Bool("base64", false, "payloads are base64 instead of hex")
	decodeCmd.Flags().StringP("output", "o", outputJSON, "output format: json|yaml")
	for _, name := range []string{"port", "format", "strict", "base64", "output"} {
		viper.BindPFlag(name, decodeCmd.Flags().Lookup(name))
	}

	encodeCmd.Flags().Float64("battery", 0, "battery voltage to pack into the payload")
	viper.BindPFlag("battery", encodeCmd.Flags().Lookup("battery"))

	rootCmd.AddCommand(decodeCmd, encodeCmd, formatsCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

type decodeConfig struct {
	Port   int
	Base64 bool
	Output string
	Opts   mapper.DecodeOptions
}

func decodeConfigFromViper() decodeConfig {
	return decodeConfig{
		Port:   viper.GetInt("port"),
		Base64: viper.GetBool("base64"),
		Output: strings.ToLower(viper.GetString("output")),
		Opts: mapper.DecodeOptions{
			Format: viper.GetString("format"),
			Strict: viper.GetBool("strict"),
		},
	}
}

func (c decodeConfig) validate() error {
	switch c.Output {
	case outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json|yaml)", c.Output)
	}
}

func runInteractive(ctx context.Context, in io.Reader, out, prompt io.Writer, cfg decodeConfig) error {
	scanner := bufio.NewScanner(in)
	logrus.Debug("mapper-decode line mode. Paste a payload and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(prompt, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecode(ctx, out, cfg, line); err != nil {
			logrus.WithError(err).WithField("payload", line).Error("failed to decode payload")
		}
	}
	return scanner.Err()
}

func runDecode(ctx context.Context, out io.Writer, cfg decodeConfig, payload string) error {
	var (
		result mapper.Result
		err    error
	)
	if cfg.Base64 {
		result, err = mapper.DecodeBase64WithOptions(ctx, payload, cfg.Port, cfg.Opts)
	} else {
		result, err = mapper.DecodeHexWithOptions(ctx, payload, cfg.Port, cfg.Opts)
	}
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"driver": result.Driver,
		"port":   result.Port,
		"bytes":  result.ByteCount,
	}).Debug("decoded payload")
	return render(out, result, cfg.Output)
}

func runEncode(out io.Writer, lines []string, battery float64) error {
	payload, err := mapper.EncodeNMEA(lines, battery)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	logrus.WithField("bytes", len(payload)).Debug("encoded payload")
	_, err = fmt.Fprintf(out, "%X\n", payload)
	return err
}

func readLines(in io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
