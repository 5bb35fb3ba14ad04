// Package nagios is the monitoring source collaborator.
//
// It lists host status objects from the monitoring API, authenticated by
// an API key query parameter, and exposes the hosts as merge
// contributions carrying liveness and addressing.
package nagios
