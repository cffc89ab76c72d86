package utils

import (
	"net"
	"os"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// LogOptions controls formatting and the optional shipping hooks.
type LogOptions struct {
	Level        string
	Format       string
	Service      string
	LogstashURL  string
	ElasticURL   string
	ElasticIndex string
}

func InitLogger() {
	InitLoggerWith(LogOptions{Level: "info"})
}

func InitLoggerWith(opts LogOptions) {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// Set output untuk InfoLogger ke stdout
	InfoLogger.SetOutput(os.Stdout)
	// Set output untuk ErrorLogger ke stderr
	ErrorLogger.SetOutput(os.Stderr)

	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if opts.Format == "json" {
		formatter = &logrus.JSONFormatter{}
	}
	InfoLogger.SetFormatter(formatter)
	ErrorLogger.SetFormatter(formatter)

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	InfoLogger.SetLevel(level)
	ErrorLogger.SetLevel(logrus.ErrorLevel)

	service := opts.Service
	if service == "" {
		service = "restaurant-kitchen"
	}

	if opts.LogstashURL != "" {
		conn, err := net.Dial("udp", opts.LogstashURL)
		if err != nil {
			ErrorLogger.Errorf("logstash hook disabled: %v", err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": service}))
			InfoLogger.AddHook(hook)
			ErrorLogger.AddHook(hook)
		}
	}

	if opts.ElasticURL != "" {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{opts.ElasticURL},
		})
		if err != nil {
			ErrorLogger.Errorf("elastic hook disabled: %v", err)
			return
		}
		index := opts.ElasticIndex
		if index == "" {
			index = service
		}
		hook, err := elogrus.NewAsyncElasticHook(client, service, logrus.InfoLevel, index)
		if err != nil {
			ErrorLogger.Errorf("elastic hook disabled: %v", err)
			return
		}
		InfoLogger.AddHook(hook)
		ErrorLogger.AddHook(hook)
	}
}
