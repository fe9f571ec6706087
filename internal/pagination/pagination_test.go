package pagination

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestFromSliceLastPartialPage(t *testing.T) {
	page := FromSlice(intRange(25), 3, 10)

	if len(page.Items) != 5 {
		t.Fatalf("expected 5 items on the last page, got %d", len(page.Items))
	}
	if page.Count != 25 {
		t.Fatalf("expected count 25, got %d", page.Count)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if !page.HasPrevious {
		t.Fatal("expected HasPrevious on page 3")
	}
	if page.HasNext {
		t.Fatal("did not expect HasNext on the last page")
	}
	if page.Items[0] != 21 {
		t.Fatalf("expected window to start at 21, got %d", page.Items[0])
	}
}

func TestFromSlicePastLastPage(t *testing.T) {
	page := FromSlice(intRange(25), 5, 10)

	if len(page.Items) != 0 {
		t.Fatalf("expected no items past the last page, got %d", len(page.Items))
	}
	if page.Count != 25 {
		t.Fatalf("count must still reflect the full source, got %d", page.Count)
	}
	if page.HasNext {
		t.Fatal("did not expect HasNext past the last page")
	}
	if !page.HasPrevious {
		t.Fatal("expected HasPrevious past the last page")
	}
}

func TestFromSliceEmptySource(t *testing.T) {
	page := FromSlice([]int{}, 1, 10)

	if len(page.Items) != 0 || page.Count != 0 {
		t.Fatalf("expected empty page, got %d items count %d", len(page.Items), page.Count)
	}
	if page.TotalPages != 0 {
		t.Fatalf("expected 0 total pages, got %d", page.TotalPages)
	}
	if page.HasNext || page.HasPrevious {
		t.Fatal("empty source has no neighbouring pages")
	}
}

func TestWindowFormulaHolds(t *testing.T) {
	for _, count := range []int{0, 1, 9, 10, 11, 25, 99} {
		for _, pageSize := range []int{1, 7, 10, 20} {
			for pageIndex := 1; pageIndex <= 6; pageIndex++ {
				page := FromSlice(intRange(count), pageIndex, pageSize)

				wantLen := count - (pageIndex-1)*pageSize
				if wantLen < 0 {
					wantLen = 0
				}
				if wantLen > pageSize {
					wantLen = pageSize
				}
				if len(page.Items) != wantLen {
					t.Fatalf("count=%d size=%d index=%d: expected %d items, got %d",
						count, pageSize, pageIndex, wantLen, len(page.Items))
				}

				wantNext := pageIndex*pageSize < count
				if page.HasNext != wantNext {
					t.Fatalf("count=%d size=%d index=%d: expected HasNext=%v",
						count, pageSize, pageIndex, wantNext)
				}
			}
		}
	}
}

func TestMapKeepsMetadata(t *testing.T) {
	page := FromSlice(intRange(25), 2, 10)
	mapped := Map(page, func(v int) string { return fmt.Sprintf("#%d", v) })

	if mapped.Count != page.Count || mapped.PageIndex != page.PageIndex ||
		mapped.TotalPages != page.TotalPages ||
		mapped.HasNext != page.HasNext || mapped.HasPrevious != page.HasPrevious {
		t.Fatal("mapping must keep paging metadata")
	}
	if mapped.Items[0] != "#11" {
		t.Fatalf("expected mapped first item #11, got %s", mapped.Items[0])
	}
}

type pagedRow struct {
	ID   uint `gorm:"primaryKey"`
	Rank int
}

func TestFromQueryWindowsOrderedSource(t *testing.T) {
	dsn := fmt.Sprintf("file:pagination-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&pagedRow{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	for i := 1; i <= 12; i++ {
		if err := gdb.Create(&pagedRow{Rank: i}).Error; err != nil {
			t.Fatalf("failed to seed row: %v", err)
		}
	}

	query := gdb.Model(&pagedRow{}).Order("rank desc")
	page, err := FromQuery[pagedRow](query, 2, 5)
	if err != nil {
		t.Fatalf("failed to paginate query: %v", err)
	}

	if page.Count != 12 {
		t.Fatalf("expected count 12, got %d", page.Count)
	}
	if len(page.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(page.Items))
	}
	if page.Items[0].Rank != 7 {
		t.Fatalf("expected page 2 to start at rank 7, got %d", page.Items[0].Rank)
	}
	if page.TotalPages != 3 || !page.HasNext || !page.HasPrevious {
		t.Fatalf("unexpected metadata: %+v", page)
	}
}
