/*
Control sequences are used to do things like move the cursor, change text
color, clear the screen, and play music. Programs only have a single way to
communicate with the terminal: writing bytes to it. In order to
differentiate between text to be displayed and commands to be executed,
terminals use special syntax known collectively as control sequences.

The sequence types understood here:

Control Characters: supported
Escape Sequences: supported
CSI Sequences ("Control Sequence Introducer"): supported
SS3 keypad sequences (ESC O x): recognised and reported
ANSI music (CSI M / CSI N ... SO): supported
OSC, DCS, SOS, PM and APC: non-supported

The csi package holds the parsed form of a CSI sequence. The esc package
holds plain escape sequences and keypad sequences.
*/
package sequences
