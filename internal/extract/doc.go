// Package extract turns located report sections into retrospective items.
//
// Each section kind has its own extractor:
//   - trips, events: "Type - Description" lines, reduced to the description
//   - rocks: goal outcomes rendered as short phrases ("Made progress on X")
//   - habits: whole habit lines with status glyphs removed
//   - calendar_summary: "Category (N events, H hours)" stat lines
//   - calendar_events: category headers with bulleted event details
//   - tasks: "Category (N)" or "Category (N/M)" headers with bulleted tasks
//
// The Engine is the weekly facade. It walks the configured section order,
// looks up the criterion for the requested mode and dispatches to the
// extractor for the section's kind:
//
//	engine, err := extract.NewEngine(extract.DefaultConfig())
//	good := engine.ExtractWeek(taskText, calText, extract.ModeGood)
//	for _, s := range good.Sections {
//	    fmt.Println(s.Section, s.Items)
//	}
//
// Extraction never fails. Missing sections, unmatched lines and gaps in
// configuration all reduce to less output.
package extract
