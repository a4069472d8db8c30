// Package logging provides structured logging for retro runs.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - JSON or console output on stderr, keeping stdout free for reports
//   - Automatic context field injection (trace_id, run.id, week, month)
//   - Level-aware sampling (errors never sampled)
//
// # Usage
//
// Create logger from config:
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
// Log with context:
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithWeek(ctx, "2026-10-05")
//	logger.Info(ctx, "week processed", zap.Int("items", n))
//
// Output includes automatic correlation:
//
//	{
//	  "ts": "2026-10-05T18:02:11.204Z",
//	  "level": "info",
//	  "msg": "week processed",
//	  "service": "retro",
//	  "run.id": "5f0c...",
//	  "week": "2026-10-05",
//	  "items": 14
//	}
//
// # Testing
//
// NewTestLogger records every entry in memory:
//
//	logger := logging.NewTestLogger()
//	svc := retro.NewService(engine, rules, logger.Logger)
//	...
//	logger.AssertLogged(t, zapcore.InfoLevel, "week processed")
package logging
