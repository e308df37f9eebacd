package cli

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ledsign")
		viper.SetConfigType("toml")
		if viper.GetString("config") != "" {
			viper.SetConfigFile(viper.GetString("config"))
		} else {
			viper.AddConfigPath("$HOME/.config/ledsign")
			viper.AddConfigPath("/etc/xdg/ledsign")
		}
	}

	viper.SetDefault("templates", "~/.config/ledsign/templates")
	viper.SetDefault("icons", "~/.config/ledsign/icons")
	viper.SetDefault("delay", 60)
	viper.SetDefault("framerate", 30)
	viper.SetDefault("debug", false)

	viper.AutomaticEnv() // read environment variables that match

	// A missing config file is fine; the defaults cover a bare install.
	err := viper.ReadInConfig()
	if err != nil && !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		cobra.CheckErr(err)
	}

	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
}
