package vt

import "testing"

func TestCharsetTranslatePassesThroughByDefault(t *testing.T) {
	var cs charsetState
	if got := cs.translate('q'); got != 'q' {
		t.Errorf("translate('q') = %q, want unchanged", got)
	}
}

func TestCharsetTranslateDecSpecialGraphics(t *testing.T) {
	var cs charsetState
	cs.designate(0, '0')
	if got := cs.translate('q'); got != '─' {
		t.Errorf("translate('q') under DEC graphics = %q, want '─'", got)
	}
	if got := cs.translate('Z'); got != 'Z' {
		t.Errorf("translate('Z') = %q, want unchanged (not in the map)", got)
	}
}

func TestCharsetShiftInOut(t *testing.T) {
	var cs charsetState
	cs.designate(0, 'B') // G0: ASCII
	cs.designate(1, '0') // G1: DEC special graphics
	cs.shiftOut()
	if got := cs.translate('q'); got != '─' {
		t.Errorf("after shiftOut, translate('q') = %q, want '─'", got)
	}
	cs.shiftIn()
	if got := cs.translate('q'); got != 'q' {
		t.Errorf("after shiftIn, translate('q') = %q, want unchanged", got)
	}
}
