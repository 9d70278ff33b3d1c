package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should register every defined key", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.MuxAudioBitrate), ShouldEqual, constant.AudioBitrate)
			So(viper.GetString(key.DownloadsDir), ShouldEqual, constant.DownloadsDir)
			So(viper.GetInt(key.NetworkProbeTimeout), ShouldEqual, 3)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("mux.audio_bitrate")
			So(result, ShouldEqual, "mux_audio_bitrate")
		})

		Convey("Env should be prefixed with the application name", func() {
			f := Default[key.SubtitlesLanguage]
			So(f.Env(), ShouldEqual, "TUBEMUX_SUBTITLES_LANGUAGE")
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given values about to be stored", t, func() {
		Convey("Known icon variants are accepted", func() {
			So(Validate(key.IconsVariant, "nerd"), ShouldBeNil)
			So(Validate(key.IconsVariant, "fancy"), ShouldNotBeNil)
		})

		Convey("Log levels must parse", func() {
			So(Validate(key.LogsLevel, "debug"), ShouldBeNil)
			So(Validate(key.LogsLevel, "loud"), ShouldNotBeNil)
		})

		Convey("Paths and names cannot be blank", func() {
			So(Validate(key.MuxContainer, "mkv"), ShouldBeNil)
			So(Validate(key.DownloadsDir, "  "), ShouldNotBeNil)
		})

		Convey("Timeouts must be positive", func() {
			So(Validate(key.NetworkProbeTimeout, 5), ShouldBeNil)
			So(Validate(key.NetworkTimeout, 0), ShouldNotBeNil)
		})

		Convey("Keys without a rule accept anything of their type", func() {
			So(Validate(key.SubtitlesEnable, false), ShouldBeNil)
		})

		Convey("Unknown keys are rejected", func() {
			So(Validate("subtitles.colour", "red"), ShouldNotBeNil)
		})
	})
}
