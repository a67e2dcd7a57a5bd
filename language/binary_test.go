package language

import "testing"

func Test_IsBinaryContent(t *testing.T) {
	late := make([]byte, sniffLen+10)
	for i := range late {
		late[i] = 'a'
	}
	late[sniffLen+5] = 0

	tests := []struct {
		name   string
		data   []byte
		binary bool
	}{
		{"source text", []byte("export const x = 1;\nexport default x;\n"), false},
		{"png header", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, true},
		{"empty", []byte{}, false},
		{"nul past the sniff window", late, false},
	}
	for _, tt := range tests {
		if got := IsBinaryContent(tt.data); got != tt.binary {
			t.Errorf("%s: IsBinaryContent = %v, want %v", tt.name, got, tt.binary)
		}
	}
}
