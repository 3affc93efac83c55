// Package domain implements the multi-hazard disaster risk engine.
//
// # Scoring Pipeline
//
// The engine is a single-stage pure-function pipeline. Four independent hazard
// scorers (wildfire, flood, severe weather, earthquake) map current
// environmental conditions to a probability in [0,1]. The prediction assembler
// keeps the hazards that clear their inclusion thresholds and attaches a
// severity label, time window, contributing factors, and recommended actions
// to each. Aggregation models then combine the surviving predictions into a
// 0-10 overall risk score and category.
//
// # Hazard Scorers
//
// Each scorer normalizes its raw inputs to roughly [0,1] factor terms, takes a
// weighted sum, applies situational multipliers (latitude band, calendar
// month), adds a small symmetric jitter, and clamps to [0,1]:
//
//	Wildfire:   0.3·temp + 0.4·(inverted humidity) + 0.3·wind,
//	            ×1.3 for 30-50° latitude bands, ×0.7 tropics,
//	            ×1.4 Jun-Sep, ×0.6 Dec-Feb, jitter ±0.10
//	Flood:      0.4·humidity + 0.4·(pressure deficit) + 0.2·temp band,
//	            ×1.2 below 45° latitude, ×1.3 May-Oct else ×0.8, jitter ±0.08
//	Storm:      0.35·wind + 0.35·(pressure deficit) + 0.2·humidity + 0.1·temp band,
//	            jitter ±0.10
//	Earthquake: static seismic-zone table (California, Japan, New Zealand,
//	            Turkey/Greece) over a 0.02 global floor, ×uniform fault-distance
//	            factor in [0.7,1.3], jitter ±0.02
//
// Severity labels share one probability mapping across hazards:
// ≥0.7 critical, ≥0.5 high, ≥0.3 moderate, ≥0.1 low, else minimal.
//
// # Inclusion Thresholds
//
// A hazard appears in the prediction list only above its threshold:
// wildfire and flood >0.10, severe weather >0.15, earthquake >0.05.
// When nothing clears, a single synthetic "low_risk" entry is emitted so the
// response always carries at least one prediction.
//
// # Aggregation Models
//
// Two aggregation strategies are kept deliberately distinct because downstream
// consumers depend on both:
//
//   - [EnhancedModel] combines the assembled predictions
//     (max·0.6 + avg·0.4, scaled to 10, floored at 1.5) with condition
//     modifiers, using the ≥7/≥5/≥3 category boundaries. Assess applies the
//     humidity and visibility modifiers unconditionally; AssessOutlook applies
//     a wider modifier ladder only when no hazard cleared its threshold.
//   - [SimpleModel] is the legacy rule-based calculator: fixed per-condition
//     score increments and the ≥8/≥6/≥4 category boundaries, no hazard
//     scorers involved.
//
// # Determinism
//
// The jitter terms and fallback draws come from a package-level random source
// that is safe for concurrent use. Tests call [SetRandSeed] for reproducible
// sequences or [SetDeterministic] to suppress randomness entirely (jitter
// terms become zero, uniform draws collapse to their midpoint). The seasonal
// month is read through a clockwork clock swappable via [SetClock].
package domain
