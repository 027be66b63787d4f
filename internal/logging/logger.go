package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/setsbymuscle/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxSizeMB = 50

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	// MaxSizeMB is the size at which the log file is rotated; MaxBackups is how
	// many rotated files are kept (0 keeps all of them).
	MaxSizeMB  int
	MaxBackups int
	// Service, when set, is added as a "service" field to every entry.
	Service string

	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
	// UseStderr sends console output to STDERR, for processes whose STDOUT is a protocol stream.
	UseStderr bool
}

// Setup configures the global logrus logger. The returned func closes the log
// file, if one was opened.
func Setup(params LoggerSetupParams) func() {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.Service != "" {
		logrus.AddHook(&fieldsHook{fields: logrus.Fields{"service": params.Service}})
	}
	if params.SentryEnabled {
		setupSentry(params)
	}

	console := io.Writer(os.Stdout)
	if params.UseStderr {
		console = os.Stderr
	}

	if params.LogFileName == "" {
		logrus.SetOutput(console)
		logrus.Debugln("writing logs only to the console")
		return func() {}
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}
	if params.MaxSizeMB <= 0 {
		params.MaxSizeMB = defaultMaxSizeMB
	}
	fileLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    params.MaxSizeMB,
		MaxBackups: params.MaxBackups,
		LocalTime:  false, // rotated file names use UTC
		Compress:   true,
	}

	if params.LogToStdout {
		logrus.SetOutput(pkg.NewFanoutWriter(console, fileLogger))
		logrus.Debugf("writing logs to [%s] and the console", params.LogFileName)
	} else {
		logrus.SetOutput(fileLogger)
	}

	return func() {
		logrus.SetOutput(console)
		if err := fileLogger.Close(); err != nil {
			logrus.Errorf("close log file: %s", err)
		}
	}
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("Sentry set up successfully")
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn":
		return logrus.WarnLevel
	default:
		return logrus.TraceLevel
	}
}

// fieldsHook stamps constant fields on every entry that does not set them.
type fieldsHook struct {
	fields logrus.Fields
}

func (h *fieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}
