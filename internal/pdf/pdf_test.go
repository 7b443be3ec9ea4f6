package pdf

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// makePDF builds a minimal but structurally valid PDF with n blank pages.
func makePDF(t *testing.T, n int) []byte {
	t.Helper()

	var b strings.Builder
	offsets := make([]int, 0, n+3)

	write := func(s string) {
		b.WriteString(s)
	}
	writeObj := func(s string) {
		offsets = append(offsets, b.Len())
		write(s)
	}

	write("%PDF-1.4\n")

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, n)
	for i := 0; i < n; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n))

	for i := 0; i < n; i++ {
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n", i+3))
	}

	xrefPos := b.Len()
	write(fmt.Sprintf("xref\n0 %d\n", n+3))
	write("0000000000 65535 f \n")
	for _, off := range offsets {
		write(fmt.Sprintf("%010d 00000 n \n", off))
	}
	write(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", n+3, xrefPos))

	return []byte(b.String())
}

func TestPageCount(t *testing.T) {
	for _, n := range []int{1, 5, 45} {
		data := makePDF(t, n)
		got, err := PageCount(data)
		if err != nil {
			t.Fatalf("PageCount(%d pages): %v", n, err)
		}
		if got != n {
			t.Errorf("PageCount = %d, want %d", got, n)
		}
	}
}

func TestPageCount_InvalidDocument(t *testing.T) {
	_, err := PageCount([]byte("this is not a pdf"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestSlice(t *testing.T) {
	data := makePDF(t, 10)

	out, err := Slice(data, 2, 5)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	n, err := PageCount(out)
	if err != nil {
		t.Fatalf("PageCount of slice: %v", err)
	}
	if n != 4 {
		t.Errorf("slice has %d pages, want 4", n)
	}
}

func TestSlice_ClampsEndPage(t *testing.T) {
	data := makePDF(t, 5)

	// Pages 3..14 requested; only 3..4 exist.
	out, err := Slice(data, 3, 14)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	n, err := PageCount(out)
	if err != nil {
		t.Fatalf("PageCount of slice: %v", err)
	}
	if n != 2 {
		t.Errorf("slice has %d pages, want 2", n)
	}
}

func TestSlice_BadRange(t *testing.T) {
	data := makePDF(t, 5)

	if _, err := Slice(data, -1, 2); err == nil {
		t.Error("expected error for negative start")
	}
	if _, err := Slice(data, 3, 1); err == nil {
		t.Error("expected error for end < start")
	}
	if _, err := Slice(data, 10, 12); err == nil {
		t.Error("expected error for start beyond document")
	}
}

func TestSlice_InvalidDocument(t *testing.T) {
	_, err := Slice([]byte("garbage"), 0, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}
