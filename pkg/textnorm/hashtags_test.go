package textnorm

import (
	"reflect"
	"testing"
)

func TestCanonicalHashtag(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"#Café123", "#cafe123"},
		{"#MÉXICO", "#mexico"},
		{"#ya_es_hora", "#ya_es_hora"},
		{"#2024", "#2024"},
	}
	for _, tt := range tests {
		got := CanonicalHashtag(tt.input)
		if got != tt.want {
			t.Errorf("CanonicalHashtag(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestHashtags(t *testing.T) {
	got := Hashtags("Viva #México y #CDMX, #! no #ñandú_2")
	want := []string{"#México", "#CDMX", "#ñandú_2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Hashtags = %v, want %v", got, want)
	}
}

func TestNormalizeHashtags(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Rico #Café123!", "Rico #cafe123!"},
		{"#Café y #Café otra vez", "#cafe y #cafe otra vez"},
		{"#Café y #CAFÉ", "#cafe y #cafe"},
		{"sin etiquetas", "sin etiquetas"},
		{"Texto NO tocado #Ok", "Texto NO tocado #ok"},
	}
	for _, tt := range tests {
		got := normalizeHashtags(tt.input)
		if got != tt.want {
			t.Errorf("normalizeHashtags(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
