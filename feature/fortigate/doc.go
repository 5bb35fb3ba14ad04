// Package fortigate is the network-fabric source collaborator.
//
// It queries the fabric controller's device monitor endpoint with a
// static bearer token, optionally trusting a custom root certificate,
// and exposes the detected devices as merge contributions. Devices
// without a hostname fall back to their normalized MAC address as the
// canonical identity.
package fortigate
