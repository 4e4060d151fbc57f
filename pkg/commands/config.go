package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
)

const (
	// ConfigName is the base name of the configuration file, without extension.
	ConfigName = "config"
	configFile = ConfigName + ".yml"
)

// NewConfigCommand returns the config command group. dir is the
// configuration directory relative to the home directory.
func NewConfigCommand(v *viper.Viper, dir string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Config utils",
		Long:  `Configuration file utilities.`,
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create config",
		Long:  `Write the effective configuration (flags, environment and existing file) to a new config file.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			filename, err := WriteConfig(c, v, dir)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "Configuration written to %s\n", filename)
			return err
		},
	}
	createCmd.Flags().String("dir", "", "Directory to write config (default ${HOME}/"+dir+")")

	configCmd.AddCommand(createCmd)
	return configCmd
}

// WriteConfig writes v to config.yml in the --dir directory, or in dir under
// the home directory. It refuses to overwrite an existing file.
func WriteConfig(c *cobra.Command, v *viper.Viper, dir string) (string, error) {
	target := c.Flag("dir").Value.String()
	if !c.Flag("dir").Changed {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
		target = filepath.Join(home, dir)
	}
	if err := os.MkdirAll(target, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}

	filename := filepath.Join(target, configFile)
	if _, err := os.Stat(filename); err == nil {
		return "", fmt.Errorf("%s already exists", filename)
	}
	if err := v.WriteConfigAs(filename); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}

	klog.V(constants.LvlInfo).InfoS("Configuration written", "path", filename)
	return filename, nil
}
