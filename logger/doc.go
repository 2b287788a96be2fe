/*
Package logger provides logging functionality to a prestapp server by defining the required behavior in [Logger]
and providing an implementation of it with [AppLogger].

# Overview

The Logger interface outputs messages at certain levels of importance,
represented with [log/slog.Level].
An [AppLogger] initialized at a certain level only emits messages at or above that level of importance.
For example, an [AppLogger] initialized with [log/slog.LevelWarn]
only produces messages from [*AppLogger.Warn], [*AppLogger.Error], and [*AppLogger.Fatal].

# AppLogger

Log messages emitted by [AppLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

In development, records are written as text with the level colorized:

	time=2024-04-28T15:55:21Z level=DEBUG source=api/loan.go:43 msg="such fun!" kind=app ctx.user.id=1

Everywhere else, records are written as JSON so log aggregators can index the log context.

The log context is a [*LogContext].
It allows for including additional data inessential to the message proper,
but provides a fuller picture of the application state at the time of logging.
Secrets found in a request's form or JSON body, such as passwords, are masked.

# SentryLogger

When a Sentry DSN is configured, [NewSentryLogger] wraps a [Logger]
and ships the error in any [*LogContext] logged at a warning level or above.
*/
package logger
