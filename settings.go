package main

import (
	"io/ioutil"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

const (
	sDemo       = "demo"
	sBoard      = "board"
	sChannel    = "channel"
	sBrightness = "brightness"
	sPWMPeriod  = "pwmPeriod"
	sPWMMode    = "pwmMode"
	sFastTick   = "fastTick"
	sSlowTick   = "slowTick"
	sSlowStep   = "slowStep"
	sInitial    = "initialThreshold"
	sSpeed      = "speed"
	sTruncate   = "truncate"
	sRepeat     = "repeat"
	sRPIOPins   = "rpioPins"
	sLogFile    = "logFile"
	sDebug      = "debug"

	defaultConsoleLog = "ledsequencer.log"
)

type configSettings interface {
	GetString(key string) string
	GetBool(key string) bool
	GetDuration(key string) time.Duration
	GetInt(key string) int
	GetFloat(key string) float64
	Dump()
}

// keep settings generic, type-convert on the fly
type settings struct {
	settings map[string]interface{}
}

func defaultSettings() *settings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sDemo] = demoPulse
	s[sBoard] = boardLog
	s[sChannel] = 2
	s[sBrightness] = 1.0
	s[sPWMPeriod] = 500
	s[sPWMMode] = "legacy"
	s[sFastTick], _ = time.ParseDuration("1us")
	s[sSlowTick], _ = time.ParseDuration("10ms")
	s[sSlowStep] = 5
	s[sInitial] = 20.0
	s[sSpeed] = 0.05
	s[sTruncate] = false
	s[sRepeat] = 1
	s[sRPIOPins] = "17,27,22,23,24,25"
	s[sLogFile] = ""
	s[sDebug] = false

	return &settings{settings: s}
}

func (s *settings) settingsFromJSON(data []byte) error {
	for k, initVal := range defaultSettings().settings {
		// ignore missing fields
		raw, dataType, _, err := jsonparser.Get(data, k)
		if err == jsonparser.KeyPathNotFoundError {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}

		switch initVal.(type) {
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil && dataType == jsonparser.String {
				// try strconv for "0x10" and friends
				val, err = strconv.ParseInt(string(raw), 0, 64)
			}
			if err == nil {
				s.settings[k] = int(val)
			}
		case float64:
			var val float64
			val, err = jsonparser.GetFloat(data, k)
			if err != nil && dataType == jsonparser.String {
				val, err = strconv.ParseFloat(string(raw), 64)
			}
			if err == nil {
				s.settings[k] = val
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil && dataType == jsonparser.String {
				// try true and false
				bVal, err = strconv.ParseBool(strings.ToLower(string(raw)))
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = errors.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}
	}
	return nil
}

// set overrides a single value, it must have the type of the default
func (s *settings) set(key string, value interface{}) error {
	cur, ok := s.settings[key]
	if !ok {
		return errors.Errorf("unknown setting %s", key)
	}
	switch cur.(type) {
	case int:
		_, ok = value.(int)
	case float64:
		_, ok = value.(float64)
	case bool:
		_, ok = value.(bool)
	case time.Duration:
		_, ok = value.(time.Duration)
	case string:
		_, ok = value.(string)
	}
	if !ok {
		return errors.Errorf("setting %s: want %T, got %T", key, cur, value)
	}
	s.settings[key] = value
	return nil
}

// applyOverrides sets the command line values that were given. The console
// board gets a default log file since termbox owns the terminal.
func applyOverrides(s *settings, demo, board string) error {
	if demo != "" {
		if err := s.set(sDemo, demo); err != nil {
			return err
		}
	}
	if board != "" {
		if err := s.set(sBoard, board); err != nil {
			return err
		}
	}
	if s.GetString(sBoard) == boardConsole && s.GetString(sLogFile) == "" {
		return s.set(sLogFile, defaultConsoleLog)
	}
	return nil
}

// load the defaults, then the config file if there is one
func initSettings(configFile string) (*settings, error) {
	s := defaultSettings()
	if configFile == "" {
		return s, nil
	}

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load conf file '%s'", configFile)
	}

	log.Printf("Reading configuration from '%s'", configFile)
	if err := s.settingsFromJSON(data); err != nil {
		return nil, errors.Wrapf(err, "conf file '%s'", configFile)
	}
	return s, nil
}

func (s *settings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *settings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *settings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *settings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *settings) GetFloat(key string) float64 {
	switch v := s.settings[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func (s *settings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := s.settings[k]
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
