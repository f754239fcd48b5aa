package document

import "testing"

func TestPairTiles(t *testing.T) {
	cap1 := Text{Binding: "{{col:cap1}}"}
	cap2 := Text{Binding: "{{col:cap2}}"}
	src1 := Image{Binding: "{{img:src1}}"}
	src2 := Image{Binding: "{{img:src2}}"}
	tbl := Table{Binding: "{{table:t}}"}

	type want struct{ caption, image string }
	tests := []struct {
		name  string
		comps []Component
		want  []want
	}{
		{
			name:  "caption image then lone image",
			comps: []Component{cap1, src1, src2},
			want:  []want{{"{{col:cap1}}", "{{img:src1}}"}, {"", "{{img:src2}}"}},
		},
		{
			name:  "image before caption",
			comps: []Component{src1, cap1, src2, cap2},
			want:  []want{{"{{col:cap1}}", "{{img:src1}}"}, {"{{col:cap2}}", "{{img:src2}}"}},
		},
		{
			name:  "two captions",
			comps: []Component{cap1, cap2},
			want:  []want{{"{{col:cap1}}", ""}, {"{{col:cap2}}", ""}},
		},
		{
			name:  "other kinds break adjacency",
			comps: []Component{cap1, tbl, src1},
			want:  []want{{"{{col:cap1}}", ""}, {"", "{{img:src1}}"}},
		},
		{
			name:  "empty",
			comps: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := PairTiles(tt.comps)
			if len(tiles) != len(tt.want) {
				t.Fatalf("expected %d tiles, got %d", len(tt.want), len(tiles))
			}
			for i, tile := range tiles {
				var got want
				if tile.Caption != nil {
					got.caption = tile.Caption.Binding
				}
				if tile.Image != nil {
					got.image = tile.Image.Binding
				}
				if got != tt.want[i] {
					t.Errorf("tile %d = %+v, want %+v", i, got, tt.want[i])
				}
			}
		})
	}
}
