package vt

// Control codes handled directly in the Ground state (spec.md §4.3).
const (
	ctrlBEL = 0x07
	ctrlBS  = 0x08
	ctrlHT  = 0x09
	ctrlLF  = 0x0a
	ctrlVT  = 0x0b
	ctrlFF  = 0x0c
	ctrlCR  = 0x0d
	ctrlSO  = 0x0e
	ctrlSI  = 0x0f
	ctrlESC = 0x1b
)

// CSI final bytes (0x40..=0x7E) this engine dispatches.
const (
	csiICH  = '@' // insert blank characters
	csiCUU  = 'A' // cursor up
	csiCUD  = 'B' // cursor down
	csiCUF  = 'C' // cursor forward
	csiCUB  = 'D' // cursor back
	csiCNL  = 'E' // cursor next line
	csiCPL  = 'F' // cursor previous line
	csiCHA  = 'G' // column absolute
	csiCUP  = 'H' // cursor position
	csiCHT  = 'I' // cursor forward tabulation
	csiED   = 'J' // erase in display
	csiEL   = 'K' // erase in line
	csiIL   = 'L' // insert lines
	csiDL   = 'M' // delete lines
	csiDCH  = 'P' // delete characters
	csiSU   = 'S' // scroll up
	csiSD   = 'T' // scroll down
	csiECH  = 'X' // erase characters
	csiCBT  = 'Z' // cursor backward tabulation
	csiHPA  = '`' // column absolute (alias)
	csiHPR  = 'a' // column relative
	csiDA   = 'c' // device attributes
	csiVPA  = 'd' // row absolute
	csiVPR  = 'e' // row relative
	csiHVP  = 'f' // horizontal/vertical position
	csiTBC  = 'g' // tab clear
	csiSM   = 'h' // set mode
	csiRM   = 'l' // reset mode
	csiSGR  = 'm' // select graphic rendition
	csiDSR  = 'n' // device status report
	csiDECQ = 'q' // overloaded: DECSCUSR, xterm version query (CSI > q)
	csiSTBM = 'r' // set top/bottom margin
	csiSLRM = 's' // set left/right margin (DECLRMM) or save ANSI cursor
	csiRAC  = 'u' // restore ANSI cursor
	csiWIN  = 't' // xtwinops
)

// SGR parameter codes (spec.md §4.3 SGR table).
const (
	sgrReset         = 0
	sgrBoldOn        = 1
	sgrDimOn         = 2
	sgrItalicOn      = 3
	sgrUnderlineOn   = 4
	sgrBlinkOn       = 5
	sgrRapidBlinkOn  = 6
	sgrReverseOn     = 7
	sgrHiddenOn      = 8
	sgrStrikeOn      = 9
	sgrBoldDimOff    = 22
	sgrItalicOff     = 23
	sgrUnderlineOff  = 24
	sgrBlinkOff      = 25
	sgrReverseOff    = 27
	sgrHiddenOff     = 28
	sgrStrikeOff     = 29
	sgrFgBase        = 30
	sgrFgExtended    = 38
	sgrFgDefault     = 39
	sgrBgBase        = 40
	sgrBgExtended    = 48
	sgrBgDefault     = 49
	sgrFgBrightBase  = 90
	sgrBgBrightBase  = 100
)

// DEC private mode codes (prefixed with '?' in the CSI sequence).
const (
	modeDECCKM  = 1
	modeDECCOLM = 3
	modeDECOM   = 6
	modeDECAWM  = 7
	modeDECTCEM = 25
	modeDECLRMM = 69
	modeAltScr  = 1049
	modeBracket = 2004
)

// ANSI (non-private) mode codes.
const (
	modeIRM = 4
	modeLNM = 20
)

// OSC leading codes (spec.md §4.3 OSC table, plus the OSC 8 supplement).
const (
	oscIconTitle = "0"
	oscIcon      = "1"
	oscTitle     = "2"
	oscPalette   = "4"
	oscHyperlink = "8"
	oscClipboard = "52"
)

const (
	tbcCurrent = 0
	tbcAll     = 3
)

const (
	defaultRows = 24
	defaultCols = 80
)
