// Package triage matches case records against a lawyer's triage
// preferences and raises notifications for the cases that merit
// attention. Evaluation is pure: cases and preferences in, an ordered
// notification list out.
package triage
