// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file.  Command line flags
// override any values set here.
type Config struct {
	Method        string              `yaml:"method"`
	MaxRedirects  int                 `yaml:"maxRedirects"`
	NoFollow      bool                `yaml:"noFollow"`
	CrossProtocol bool                `yaml:"crossProtocol"`
	OmitReferer   bool                `yaml:"omitReferer"`
	Jar           string              `yaml:"jar"`
	JarFormat     string              `yaml:"jarFormat"`
	Cookies       []string            `yaml:"cookies"`
	Headers       map[string][]string `yaml:"headers"`
	Timeout       time.Duration       `yaml:"timeout"`
	HopTimeout    time.Duration       `yaml:"hopTimeout"`
	UserAgent     string              `yaml:"userAgent"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}

	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}
