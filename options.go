package lapse

import (
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// Device header defaults reported by the iOS app.
const (
	DefaultAppVersion       = "2.98.0"
	DefaultAppBuild         = 21975
	DefaultTimezone         = "America/New_York"
	DefaultApolloClientName = "com.lapse.journal-apollo-ios"
	DefaultAcceptLanguage   = "en-US,en;q=0.9"
)

var iosVersions = []string{
	"16", "16.0.1", "16.0.2", "16.0.3", "16.1", "16.1.1", "16.1.2", "16.2", "16.3", "16.3.1", "16.4",
	"16.4.1", "16.5", "16.5.1", "16.6", "16.6.1", "16.7", "16.7.1", "16.7.2",
}

var deviceNames = []string{
	"iPhone10,4", "iPhone10,5", "iPhone10,6", "iPhone11,2", "iPhone11,4", "iPhone11,6", "iPhone11,8",
	"iPhone12,1", "iPhone12,3", "iPhone12,5", "iPhone12,8", "iPhone13,1", "iPhone13,2", "iPhone13,3",
	"iPhone13,4", "iPhone14,2", "iPhone14,3", "iPhone14,4", "iPhone14,5", "iPhone14,6", "iPhone14,7",
	"iPhone14,8", "iPhone15,2", "iPhone15,3", "iPhone15,4", "iPhone15,5", "iPhone16,1", "iPhone16,2",
}

// DeviceOptions is the table of device headers sent with every GraphQL
// request. Empty fields are filled by WithDefaults.
//
// Example:
//
//	opts := lapse.DeviceOptions{Timezone: "Europe/London"}
//	client, err := lapse.NewClient(&lapse.Config{RefreshToken: token, Device: opts})
type DeviceOptions struct {
	// IOSVersion is sent as x-ios-version-number. Defaults to a random iOS 16 release.
	IOSVersion string `env:"IOS_VERSION" yaml:"ios_version"`
	// DeviceName is sent as x-device-name. Defaults to a random iPhone model identifier.
	DeviceName string `env:"DEVICE_NAME" yaml:"device_name"`
	// UserAgent defaults to "Lapse/<AppVersion>/<AppBuild> iOS".
	UserAgent string `env:"USER_AGENT" yaml:"user_agent"`
	// AppVersion is sent as x-app-version-number.
	AppVersion string `env:"APP_VERSION" yaml:"app_version"`
	// AppBuild is sent as x-app-build-number.
	AppBuild int `env:"APP_BUILD" yaml:"app_build"`
	// Timezone is sent as x-timezone and used for uploads that do not set one.
	Timezone string `env:"TIMEZONE" yaml:"timezone"`
	// DeviceID is sent as x-device-id. Defaults to a random UUID, fixed for the
	// lifetime of the client.
	DeviceID string `env:"DEVICE_ID" yaml:"device_id"`
	// ApolloClientName is sent as apollographql-client-name.
	ApolloClientName string `env:"APOLLO_CLIENT_NAME" yaml:"apollo_client_name"`
	// ApolloClientVersion defaults to "<AppVersion>-<AppBuild>".
	ApolloClientVersion string `env:"APOLLO_CLIENT_VERSION" yaml:"apollo_client_version"`
	// AcceptLanguage is sent as accept-language.
	AcceptLanguage string `env:"ACCEPT_LANGUAGE" yaml:"accept_language"`
}

// WithDefaults returns a copy of o with every empty field filled in.
func (o DeviceOptions) WithDefaults() DeviceOptions {
	if o.AppVersion == "" {
		o.AppVersion = DefaultAppVersion
	}
	if o.AppBuild == 0 {
		o.AppBuild = DefaultAppBuild
	}
	if o.Timezone == "" {
		o.Timezone = DefaultTimezone
	}
	if o.ApolloClientName == "" {
		o.ApolloClientName = DefaultApolloClientName
	}
	if o.AcceptLanguage == "" {
		o.AcceptLanguage = DefaultAcceptLanguage
	}
	build := strconv.Itoa(o.AppBuild)
	if o.UserAgent == "" {
		o.UserAgent = "Lapse/" + o.AppVersion + "/" + build + " iOS"
	}
	if o.ApolloClientVersion == "" {
		o.ApolloClientVersion = o.AppVersion + "-" + build
	}
	if o.DeviceID == "" {
		o.DeviceID = uuid.NewString()
	}
	// device name and iOS version are picked independently and may not
	// describe a real device/OS pairing
	if o.DeviceName == "" {
		o.DeviceName = deviceNames[rand.IntN(len(deviceNames))]
	}
	if o.IOSVersion == "" {
		o.IOSVersion = iosVersions[rand.IntN(len(iosVersions))]
	}
	return o
}

// Headers renders the base header table. Per-operation headers
// (x-apollo-operation-*, x-emb-path, authorization) are added by the transport.
func (o DeviceOptions) Headers() http.Header {
	h := make(http.Header)
	h.Set("X-Ios-Version-Number", o.IOSVersion)
	h.Set("X-Device-Name", o.DeviceName)
	h.Set("User-Agent", o.UserAgent)
	h.Set("X-App-Version-Number", o.AppVersion)
	h.Set("X-Timezone", o.Timezone)
	h.Set("X-Device-Id", o.DeviceID)
	h.Set("X-App-Build-Number", strconv.Itoa(o.AppBuild))
	h.Set("Apollographql-Client-Name", o.ApolloClientName)
	h.Set("Apollographql-Client-Version", o.ApolloClientVersion)
	h.Set("Accept-Language", o.AcceptLanguage)
	h.Set("Accept", "*/*")
	h.Set("Content-Type", "application/json")
	return h
}
