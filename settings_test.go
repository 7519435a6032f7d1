package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := defaultSettings()

	assert.Equal(t, s.GetString(sDemo), demoPulse)
	assert.Equal(t, s.GetString(sBoard), boardLog)
	assert.Equal(t, s.GetInt(sChannel), 2)
	assert.Equal(t, s.GetInt(sPWMPeriod), 500)
	assert.Equal(t, s.GetDuration(sFastTick), time.Microsecond)
	assert.Equal(t, s.GetDuration(sSlowTick), 10*time.Millisecond)
	assert.Equal(t, s.GetInt(sSlowStep), 5)
	assert.Equal(t, s.GetFloat(sInitial), 20.0)
	assert.Equal(t, s.GetFloat(sSpeed), 0.05)
	assert.Equal(t, s.GetBool(sTruncate), false)
}

func TestSettingsFromJSON(t *testing.T) {
	s := defaultSettings()
	err := s.settingsFromJSON([]byte(`{
		"demo": "sos",
		"channel": "0x4",
		"pwmPeriod": 250,
		"speed": 0.1,
		"initialThreshold": "12.5",
		"truncate": "TRUE",
		"debug": true,
		"slowTick": "20ms",
		"unrelated": [1, 2, 3]
	}`))
	assert.NilError(t, err)

	assert.Equal(t, s.GetString(sDemo), demoSOS)
	assert.Equal(t, s.GetInt(sChannel), 4)
	assert.Equal(t, s.GetInt(sPWMPeriod), 250)
	assert.Equal(t, s.GetFloat(sSpeed), 0.1)
	assert.Equal(t, s.GetFloat(sInitial), 12.5)
	assert.Equal(t, s.GetBool(sTruncate), true)
	assert.Equal(t, s.GetBool(sDebug), true)
	assert.Equal(t, s.GetDuration(sSlowTick), 20*time.Millisecond)
	// untouched
	assert.Equal(t, s.GetDuration(sFastTick), time.Microsecond)
	assert.Equal(t, s.GetString(sBoard), boardLog)
}

func TestSettingsFromJSONErrors(t *testing.T) {
	tests := []struct {
		data string
		key  string
	}{
		{`{"channel": true}`, sChannel},
		{`{"channel": "two"}`, sChannel},
		{`{"speed": "fast"}`, sSpeed},
		{`{"debug": 1}`, sDebug},
		{`{"slowTick": "soon"}`, sSlowTick},
		{`{"slowTick": 10}`, sSlowTick},
		{`{"demo": 5}`, sDemo},
	}
	for _, tc := range tests {
		err := defaultSettings().settingsFromJSON([]byte(tc.data))
		assert.ErrorContains(t, err, "setting "+tc.key, tc.data)
	}
}

func TestInitSettings(t *testing.T) {
	s, err := initSettings("")
	assert.NilError(t, err)
	assert.Equal(t, s.GetString(sDemo), demoPulse)

	_, err = initSettings(filepath.Join(t.TempDir(), "missing.conf"))
	assert.ErrorContains(t, err, "could not load conf file")

	fname := filepath.Join(t.TempDir(), "ledsequencer.conf")
	assert.NilError(t, ioutil.WriteFile(fname, []byte(`{"board": "console", "repeat": 0}`), 0644))
	s, err = initSettings(fname)
	assert.NilError(t, err)
	assert.Equal(t, s.GetString(sBoard), boardConsole)
	assert.Equal(t, s.GetInt(sRepeat), 0)

	assert.NilError(t, ioutil.WriteFile(fname, []byte(`{"repeat": "many"}`), 0644))
	_, err = initSettings(fname)
	assert.ErrorContains(t, err, "setting repeat")
}

func TestSettingsSet(t *testing.T) {
	s := defaultSettings()

	assert.NilError(t, s.set(sChannel, 3))
	assert.Equal(t, s.GetInt(sChannel), 3)
	assert.NilError(t, s.set(sFastTick, 5*time.Microsecond))
	assert.Equal(t, s.GetDuration(sFastTick), 5*time.Microsecond)

	assert.ErrorContains(t, s.set(sChannel, "3"), "want int")
	assert.ErrorContains(t, s.set(sSpeed, 1), "want float64")
	assert.ErrorContains(t, s.set("volume", 11), "unknown setting")
	assert.Equal(t, s.GetInt(sChannel), 3)
}

func TestApplyOverrides(t *testing.T) {
	s := defaultSettings()
	assert.NilError(t, applyOverrides(s, "", ""))
	assert.Equal(t, s.GetString(sDemo), demoPulse)
	assert.Equal(t, s.GetString(sLogFile), "")

	assert.NilError(t, applyOverrides(s, demoWalk, boardConsole))
	assert.Equal(t, s.GetString(sDemo), demoWalk)
	assert.Equal(t, s.GetString(sBoard), boardConsole)
	assert.Equal(t, s.GetString(sLogFile), defaultConsoleLog)

	// an explicit log file wins
	s = defaultSettings()
	assert.NilError(t, s.set(sLogFile, "mine.log"))
	assert.NilError(t, applyOverrides(s, "", boardConsole))
	assert.Equal(t, s.GetString(sLogFile), "mine.log")
}

func TestApplyOverridesRejectsBadSetting(t *testing.T) {
	s := &settings{settings: map[string]interface{}{sDemo: 1}}
	assert.ErrorContains(t, applyOverrides(s, demoSOS, ""), "want int")
}

func TestSettingsWrongTypeGetters(t *testing.T) {
	s := defaultSettings()

	assert.Equal(t, s.GetString(sChannel), "")
	assert.Equal(t, s.GetBool(sDemo), false)
	assert.Equal(t, s.GetDuration(sDemo), time.Duration(-1))
	assert.Equal(t, s.GetInt(sSpeed), 0)
	// ints read as floats
	assert.Equal(t, s.GetFloat(sPWMPeriod), 500.0)
}
