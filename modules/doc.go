// Package modules holds the target modules a bridge can instantiate.
//
// Each module embeds kernel.Base, declares its ports in its constructor and
// implements kernel.LineTracer. Port names, widths and line-trace formats are
// part of each module's external contract and must not change.
package modules
