package bytecode

import "testing"

func TestSimpleInstructionRoundTrip(t *testing.T) {
	instr := MakeSimpleInstruction(ADD)
	if instr.OpCode() != ADD {
		t.Fatalf("got opcode %v, want ADD", instr.OpCode())
	}
	if instr.A() != 0 || instr.B() != 0 {
		t.Fatalf("got A=%d B=%d, want 0,0", instr.A(), instr.B())
	}
}

func TestInstructionBRoundTrip(t *testing.T) {
	instr := MakeInstructionB(LITERAL, 0x1234)
	if instr.OpCode() != LITERAL {
		t.Fatalf("got opcode %v, want LITERAL", instr.OpCode())
	}
	if instr.B() != 0x1234 {
		t.Fatalf("got B=%#x, want 0x1234", instr.B())
	}
	if instr.A() != 0 {
		t.Fatalf("got A=%d, want 0", instr.A())
	}
}

func TestInstructionRoundTrip(t *testing.T) {
	instr := MakeInstruction(SETC, byte(3), 7)
	if instr.OpCode() != SETC {
		t.Fatalf("got opcode %v, want SETC", instr.OpCode())
	}
	if instr.A() != 3 {
		t.Fatalf("got A=%d, want 3", instr.A())
	}
	if instr.B() != 7 {
		t.Fatalf("got B=%d, want 7", instr.B())
	}
}

func TestSignedBNegativeOffset(t *testing.T) {
	instr := MakeInstructionB(B_ALWAYS, uint16(int16(-5)))
	if got := instr.SignedB(); got != -5 {
		t.Fatalf("got SignedB()=%d, want -5", got)
	}
}

func TestSignedBPositiveOffset(t *testing.T) {
	instr := MakeInstructionB(B_TRUE, 42)
	if got := instr.SignedB(); got != 42 {
		t.Fatalf("got SignedB()=%d, want 42", got)
	}
}

func TestOpStringKnownAndUnknown(t *testing.T) {
	if ADD.String() != "ADD" {
		t.Fatalf("got %q, want ADD", ADD.String())
	}
	var bad Op = 200
	if bad.String() != "OP?" {
		t.Fatalf("got %q, want OP?", bad.String())
	}
}

func TestInstructionStringFormsByCategory(t *testing.T) {
	tests := []struct {
		name  string
		instr Instruction
		want  string
	}{
		{"simple", MakeSimpleInstruction(POP), "POP"},
		{"count", MakeInstructionB(CALL, 2), "CALL 2"},
		{"jump", MakeInstructionB(B_ALWAYS, uint16(int16(3))), "B_ALWAYS 3"},
		{"table", MakeInstructionB(LITERAL, 5), "LITERAL #5"},
		{"setc", MakeInstruction(SETC, 2, 0), "SETC 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.instr.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
