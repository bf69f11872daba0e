// Package domain models asteroid impact effects.
//
// # Inputs
//
// All quantities use MKS units:
//
//	diameter  meters, projectile treated as a sphere
//	velocity  meters per second, at atmospheric entry
//	density   kg/m³ of the projectile (default 3000)
//	angle     degrees measured from the surface; 90 is a vertical hit
//
// Diameter and velocity are required. Zero and negative values are accepted
// and flow through the guarded formulas below. Inputs large enough that mass,
// effective velocity or energy overflow float64 are rejected as invalid, so a
// report never carries NaN or Inf.
//
// # Pipeline
//
//	mass        (4/3)·π·(d/2)³·ρ
//	v_eff       v·sin(angle)
//	energy      ½·m·v_eff²  (joules), energy / 4.184e15 (megatons TNT)
//	crater      1.5·(E / (g·ρ_target))^¼          E ≤ 0 → 0
//	magnitude   (2/3)·log10(E) − 3.2, two decimals  E ≤ 0 → 0
//
// Crater scaling uses the constant crust density ρ_target, never the
// projectile density. Projectile density reaches the crater only through the
// impact energy, so two impacts with equal energy share a crater size.
//
// # Ocean impacts
//
// Ocean detection goes through [OceanDetector]. The only implementation,
// [LandOnly], reports every location as land.
//
// # Event IDs
//
// Simulation events carry a deterministic ID derived from the resolved inputs
// (see [ReportID]) so downstream consumers can deduplicate replays.
package domain
