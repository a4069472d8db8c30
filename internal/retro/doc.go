// Package retro runs weekly extractions, monthly rollups and habit
// evaluations on top of the extraction engine.
//
// A Service owns the immutable engine configuration, the compiled habit
// rules, an optional week store, a logger and OpenTelemetry instruments.
// It is safe for concurrent use.
//
//	svc, err := retro.NewService(engine, evaluator, retro.WithStore(db))
//	rep, err := svc.ProcessWeek(ctx, retro.WeekInput{Week: "2026-10-05", TaskText: tasks})
package retro
