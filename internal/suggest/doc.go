// Package suggest generates hub automation scaffolds from trigger and
// action descriptions. The rendered YAML follows the hub's automation
// document shape so it can be pasted straight into the automation editor.
package suggest
