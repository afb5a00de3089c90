package cmd

import (
	"strconv"

	"github.com/rbowes/reposync/internal/query"
)

// termFlag implements pflag.Value for a repeatable flag that appends a
// formatted query term. All term flags share one builder so that terms
// keep the order they were given on the command line, regardless of which
// flag produced them.
type termFlag struct {
	builder *query.Builder
	format  string
}

func newTermFlag(builder *query.Builder, format string) *termFlag {
	return &termFlag{builder: builder, format: format}
}

func (f *termFlag) String() string {
	return ""
}

func (f *termFlag) Set(value string) error {
	f.builder.AppendFormat(f.format, value)
	return nil
}

func (f *termFlag) Type() string {
	return "string"
}

// connectorFlag implements pflag.Value for a repeatable no-argument flag
// that appends a literal boolean connector (OR, NOT).
type connectorFlag struct {
	builder   *query.Builder
	connector string
}

func newConnectorFlag(builder *query.Builder, connector string) *connectorFlag {
	return &connectorFlag{builder: builder, connector: connector}
}

func (f *connectorFlag) String() string {
	return "false"
}

func (f *connectorFlag) Set(value string) error {
	// pflag passes NoOptDefVal ("true") when the flag is given bare.
	if v, err := strconv.ParseBool(value); err == nil && !v {
		return nil
	}
	f.builder.Append(f.connector)
	return nil
}

func (f *connectorFlag) Type() string {
	return "bool"
}
