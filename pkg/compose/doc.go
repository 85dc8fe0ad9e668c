// Package compose holds the text being typed on the on-screen keyboard:
// the Spanish QWERTY layout, the shift and caps modifiers, and the current
// (partial) word fed to the predictor.
package compose
