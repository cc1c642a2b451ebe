package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// WritePartitionFile. one "node cluster" line per vertex, cluster ids relabeled to 0..k-1 by ReformPartition.
func WritePartitionFile(filename string, solution []ClusterID) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(filename, COMPRESSED_SUFFIX) {
		return WritePartition(f, solution)
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := WritePartition(bz, solution); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func WritePartition(out io.Writer, solution []ClusterID) error {
	reformed := PartitionToSolution(ReformPartition(SolutionToPartition(solution)), len(solution))

	w := bufio.NewWriter(out)
	for u, c := range reformed {
		fmt.Fprintf(w, "%d %d\n", u, c)
	}
	return w.Flush()
}
