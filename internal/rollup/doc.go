// Package rollup folds several weeks of extracted items into one monthly
// summary per section.
//
// The rule depends on the section kind:
//   - trips, events, rocks: every item of the month joined into one
//     comma-separated line
//   - habits: how many weeks each habit appeared, "Core (3/4 weeks)"
//   - calendar_summary: summed events and hours per category, plus
//     "No X Time (K/N weeks)" markers
//   - calendar_events, tasks: summed headers with optional detail lines
//   - anything else: items joined by newlines
//
// Lines that fail to parse are skipped for that category only; aggregation
// of the remaining categories continues.
package rollup
