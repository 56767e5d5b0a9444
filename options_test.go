package lapse

import (
	"slices"
	"testing"
)

func TestDeviceOptions_WithDefaults(t *testing.T) {
	o := DeviceOptions{}.WithDefaults()

	if o.AppVersion != DefaultAppVersion || o.AppBuild != DefaultAppBuild {
		t.Errorf("app version = %s/%d", o.AppVersion, o.AppBuild)
	}
	if o.UserAgent != "Lapse/2.98.0/21975 iOS" {
		t.Errorf("UserAgent = %q", o.UserAgent)
	}
	if o.ApolloClientVersion != "2.98.0-21975" {
		t.Errorf("ApolloClientVersion = %q", o.ApolloClientVersion)
	}
	if !slices.Contains(deviceNames, o.DeviceName) {
		t.Errorf("DeviceName %q is not a known model", o.DeviceName)
	}
	if !slices.Contains(iosVersions, o.IOSVersion) {
		t.Errorf("IOSVersion %q is not a known release", o.IOSVersion)
	}
	if len(o.DeviceID) != 36 {
		t.Errorf("DeviceID = %q, want a uuid", o.DeviceID)
	}

	again := o.WithDefaults()
	if again != o {
		t.Errorf("WithDefaults on a resolved table changed it: %+v", again)
	}
}

func TestDeviceOptions_Overrides(t *testing.T) {
	o := DeviceOptions{
		AppVersion: "3.0.0",
		AppBuild:   1,
		DeviceName: "iPhone15,2",
		IOSVersion: "17.0",
		Timezone:   "Europe/Berlin",
		DeviceID:   "fixed",
	}.WithDefaults()

	h := o.Headers()
	tests := []struct {
		header string
		want   string
	}{
		{"User-Agent", "Lapse/3.0.0/1 iOS"},
		{"X-App-Version-Number", "3.0.0"},
		{"X-App-Build-Number", "1"},
		{"X-Device-Name", "iPhone15,2"},
		{"X-Ios-Version-Number", "17.0"},
		{"X-Timezone", "Europe/Berlin"},
		{"X-Device-Id", "fixed"},
		{"Apollographql-Client-Name", DefaultApolloClientName},
		{"Apollographql-Client-Version", "3.0.0-1"},
		{"Accept-Language", DefaultAcceptLanguage},
		{"Accept", "*/*"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := h.Get(tt.header); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
	if h.Get("Authorization") != "" {
		t.Error("base headers must not carry Authorization")
	}
}
