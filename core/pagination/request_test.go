package pagination

import "testing"

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  PaginationParams
		wantErr bool
	}{
		{
			name: "valid params with defaults",
			params: PaginationParams{
				Limit:  10,
				Offset: 0,
				Page:   1,
			},
			wantErr: false,
		},
		{
			name: "valid params with custom values",
			params: PaginationParams{
				BaseRequestParams: BaseRequestParams{
					SortBy: "name",
					Order:  SortOrderAsc,
				},
				Limit:  50,
				Offset: 100,
				Page:   3,
			},
			wantErr: false,
		},
		{
			name: "limit too high",
			params: PaginationParams{
				Limit: 10001,
			},
			wantErr: true,
		},
		{
			name: "limit too low",
			params: PaginationParams{
				Limit: 0,
				Page:  1,
			},
			wantErr: false, // Should use default
		},
		{
			name: "negative offset",
			params: PaginationParams{
				Limit:  10,
				Offset: -1,
			},
			wantErr: true,
		},
		{
			name: "invalid page",
			params: PaginationParams{
				Limit: 10,
				Page:  0,
			},
			wantErr: false, // Should use default
		},
		{
			name: "invalid order",
			params: PaginationParams{
				BaseRequestParams: BaseRequestParams{
					Order: "invalid",
				},
				Limit: 10,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("PaginationParams.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaginationParams_GetOffset(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		want   int
	}{
		{
			name: "explicit offset",
			params: PaginationParams{
				Limit:  10,
				Offset: 20,
			},
			want: 20,
		},
		{
			name: "calculated from page",
			params: PaginationParams{
				Limit: 10,
				Page:  3,
			},
			want: 20,
		},
		{
			name: "first page",
			params: PaginationParams{
				Limit: 10,
				Page:  1,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.GetOffset(); got != tt.want {
				t.Errorf("PaginationParams.GetOffset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaginationParams_GetPage(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		want   int
	}{
		{
			name: "explicit page",
			params: PaginationParams{
				Limit: 10,
				Page:  5,
			},
			want: 5,
		},
		{
			name: "calculated from offset",
			params: PaginationParams{
				Limit:  10,
				Offset: 20,
			},
			want: 3,
		},
		{
			name: "default page",
			params: PaginationParams{
				Limit: 10,
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.GetPage(); got != tt.want {
				t.Errorf("PaginationParams.GetPage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	type User struct {
		ID   string
		Name string
	}

	users := []User{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "Bob"},
		{ID: "3", Name: "Charlie"},
	}

	params := &PaginationParams{
		Limit: 10,
		Page:  1,
	}

	resp := NewPageResponse(users, 25, params)

	if resp.Pagination == nil {
		t.Fatal("Pagination metadata is nil")
	}

	if resp.Pagination.Total != 25 {
		t.Errorf("Total = %v, want 25", resp.Pagination.Total)
	}

	if resp.Pagination.TotalPages != 3 {
		t.Errorf("TotalPages = %v, want 3", resp.Pagination.TotalPages)
	}

	if !resp.Pagination.HasNext {
		t.Error("HasNext should be true")
	}

	if resp.Pagination.HasPrev {
		t.Error("HasPrev should be false")
	}

	if len(resp.Data) != 3 {
		t.Errorf("Data length = %v, want 3", len(resp.Data))
	}
}

// Benchmark tests
func BenchmarkPaginationParams_Validate(b *testing.B) {
	params := PaginationParams{
		BaseRequestParams: BaseRequestParams{
			SortBy: "created_at",
			Order:  SortOrderDesc,
		},
		Limit:  10,
		Offset: 0,
		Page:   1,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = params.Validate()
	}
}
