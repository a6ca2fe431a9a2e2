/*
Copyright 2025 GSTRecon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT       = "5020"
	DEFAULT_REPORT_OUT = "reconciliation_output.xlsx"
)

var ConfigStore atomic.Value

type ServerConfig struct {
	Port string `json:"port" envconfig:"GSTRECON_SERVER_PORT"`
}

type ReportConfig struct {
	// OutputFile is the default workbook path used by the CLI when --out is
	// not given.
	OutputFile string `json:"output_file" envconfig:"GSTRECON_REPORT_OUTPUT_FILE"`
	// TemplateDir is where the sample templates are written.
	TemplateDir string `json:"template_dir" envconfig:"GSTRECON_REPORT_TEMPLATE_DIR"`
}

type LogConfig struct {
	Level string `json:"level" envconfig:"GSTRECON_LOG_LEVEL"`
}

type Configuration struct {
	ProjectName string       `json:"project_name" envconfig:"GSTRECON_PROJECT_NAME"`
	Server      ServerConfig `json:"server"`
	Report      ReportConfig `json:"report"`
	Log         LogConfig    `json:"log"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("gstrecon", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called gstrecon.json with your config")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		cnf.ProjectName = "GSTRecon"
	}

	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.Report.OutputFile = strings.TrimSpace(cnf.Report.OutputFile)
	cnf.Report.TemplateDir = strings.TrimSpace(cnf.Report.TemplateDir)

	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.Report.OutputFile == "" {
		cnf.Report.OutputFile = DEFAULT_REPORT_OUT
	}

	if cnf.Report.TemplateDir == "" {
		cnf.Report.TemplateDir = "."
	}

	if cnf.Log.Level != "" {
		if _, err := logrus.ParseLevel(cnf.Log.Level); err != nil {
			return errors.New("invalid log level: " + cnf.Log.Level)
		}
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
