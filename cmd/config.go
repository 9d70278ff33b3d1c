// Package cmd implements the command-line interface of tubemux.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/color"
	"github.com/tubemux/tubemux/config"
	"github.com/tubemux/tubemux/icon"
	"github.com/tubemux/tubemux/style"
	"github.com/tubemux/tubemux/util"
)

// lookupField returns the registered field of key, suggesting the closest key otherwise.
func lookupField(key string) (config.Field, error) {
	if field, ok := config.Default[key]; ok {
		return field, nil
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})
	return config.Field{}, fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

// parseValue converts raw into the type of the key's default and validates it.
func parseValue(key, raw string) (any, error) {
	field, err := lookupField(key)
	if err != nil {
		return nil, err
	}

	var v any
	switch field.Value.(type) {
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", key, raw)
		}
		v = n
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects a boolean, got %q", key, raw)
		}
		v = b
	default:
		v = raw
	}

	return v, config.Validate(key, v)
}

// persistConfig writes the configuration, creating the file on first use.
func persistConfig() error {
	err := viper.WriteConfig()
	if errors.As(err, new(viper.ConfigFileNotFoundError)) {
		return viper.SafeWriteConfig()
	}
	return err
}

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configResetCmd)

	configInfoCmd.Flags().BoolP("json", "j", false, "Print the fields as JSON")
	configInfoCmd.SetOut(os.Stdout)

	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change download, subtitle and mux settings",
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe configuration keys with their current and default values",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)
		if len(args) > 0 {
			fields = fields[:0]
			for _, key := range args {
				field, err := lookupField(key)
				handleErr(err)
				fields = append(fields, field)
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i, field := range fields {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(field.Pretty())
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the current value of a key",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := lookupField(args[0])
		handleErr(err)
		fmt.Println(viper.Get(args[0]))
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value>",
	Short:             "Validate and store a new value for a key",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		v, err := parseValue(key, args[1])
		handleErr(err)

		viper.Set(key, v)
		handleErr(persistConfig())

		fmt.Printf(
			"%s %s = %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(key),
			style.Fg(color.Yellow)(fmt.Sprint(v)),
		)
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore keys, or every key with --all, to their defaults",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		keys := args
		if lo.Must(cmd.Flags().GetBool("all")) {
			keys = lo.Keys(config.Default)
		}
		if len(keys) == 0 {
			handleErr(errors.New("name the keys to reset or pass --all"))
		}

		for _, key := range keys {
			field, err := lookupField(key)
			handleErr(err)
			viper.Set(key, field.Value)
		}
		handleErr(persistConfig())

		fmt.Printf(
			"%s reset %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(util.Quantify(len(keys), "key", "keys")),
		)
	},
}
