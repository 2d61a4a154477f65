package dataset

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hazyhaar/textnorm/pkg/textnorm"
)

func TestRead_Header(t *testing.T) {
	tbl, err := Read(strings.NewReader("id;text\n1;Tamos bien\n2;\"con ; punto\"\n"), Format{Delimiter: ";", HasHeader: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tbl.Header) != 2 || tbl.Header[1] != "text" {
		t.Errorf("header = %v", tbl.Header)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[1][1] != "con ; punto" {
		t.Errorf("rows = %v", tbl.Rows)
	}
}

func TestRead_Latin1(t *testing.T) {
	// "Múltiples" encoded as ISO-8859-1.
	raw := []byte("text\nM\xfaltiples   espacios\n")
	tbl, err := Read(bytes.NewReader(raw), Format{Encoding: "iso-8859-1", HasHeader: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := tbl.Rows[0][0]; got != "Múltiples   espacios" {
		t.Errorf("row = %q, want transcoded text", got)
	}
}

func TestRead_UnsupportedEncoding(t *testing.T) {
	if _, err := Read(strings.NewReader("a\n"), Format{Encoding: "nope-42"}); err == nil {
		t.Error("expected error for unsupported encoding")
	}
}

func TestRead_EmptyWithHeader(t *testing.T) {
	tbl, err := Read(strings.NewReader(""), Format{HasHeader: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tbl.Header != nil || len(tbl.Rows) != 0 {
		t.Errorf("unexpected table %+v", tbl)
	}
}

func TestColumnIndex(t *testing.T) {
	tbl := &Table{Header: []string{"id", "text"}}
	if i, err := tbl.ColumnIndex("text"); err != nil || i != 1 {
		t.Errorf("ColumnIndex(text) = %d, %v", i, err)
	}
	if _, err := tbl.ColumnIndex("missing"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("err = %v, want ErrColumnNotFound", err)
	}

	noHeader := &Table{}
	if i, err := noHeader.ColumnIndex("2"); err != nil || i != 2 {
		t.Errorf("ColumnIndex(2) = %d, %v", i, err)
	}
	if _, err := noHeader.ColumnIndex("text"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("err = %v, want ErrColumnNotFound", err)
	}
}

func TestNormalize_AppendsColumn(t *testing.T) {
	tbl, err := Read(strings.NewReader("id,text\n1,Tamos ❌ bien pq si\n2,\"Q'HUVO con la neta?\"\n3\n"), Format{HasHeader: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := tbl.Normalize(context.Background(), textnorm.Default(), "text", "", 2); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, tbl, ""); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "id,text,text_normalized\n" +
		"1,Tamos ❌ bien pq si,estamos bien porque si\n" +
		"2,Q'HUVO con la neta?,que hubo con la verdad\n" +
		"3,,\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestNormalize_OverwritesExistingColumn(t *testing.T) {
	tbl := &Table{Rows: [][]string{{"  Múltiples   espacios  "}}}
	if err := tbl.Normalize(context.Background(), textnorm.Default(), "0", "0", 1); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(tbl.Rows[0]) != 1 || tbl.Rows[0][0] != "multiples espacios" {
		t.Errorf("row = %v", tbl.Rows[0])
	}
}

func TestNormalize_UnknownColumn(t *testing.T) {
	tbl := &Table{Header: []string{"id"}, Rows: [][]string{{"1"}}}
	err := tbl.Normalize(context.Background(), textnorm.Default(), "text", "", 1)
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("err = %v, want ErrColumnNotFound", err)
	}
}

func TestRead_ByteOrderMark(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		enc  string
	}{
		{"utf-8-sig", []byte("\xef\xbb\xbftext,id\nHola,1\n"), ""},
		{"bom beats declared latin1", []byte("\xef\xbb\xbftext,id\nHola,1\n"), "iso-8859-1"},
		{"utf-16le", []byte("\xff\xfet\x00e\x00x\x00t\x00,\x00i\x00d\x00\n\x00H\x00o\x00l\x00a\x00,\x001\x00\n\x00"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Read(bytes.NewReader(tt.raw), Format{Encoding: tt.enc, HasHeader: true})
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			idx, err := tbl.ColumnIndex("text")
			if err != nil {
				t.Fatalf("ColumnIndex: %v (header %q)", err, tbl.Header)
			}
			if got := tbl.Rows[0][idx]; got != "Hola" {
				t.Errorf("row = %q, want Hola", got)
			}
		})
	}
}
