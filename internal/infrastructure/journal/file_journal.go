package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/pkg/logger"
)

var _ ledger.Journal = (*FileJournal)(nil)

// FileJournal implementa el journal del ledger como archivo NDJSON de
// solo-anexado: un evento por línea, sin reescrituras ni borrados. Vive fuera
// del esquema relacional a propósito: un DELETE en cascada sobre stock no
// puede tocar la historia.
type FileJournal struct {
	mu   sync.Mutex
	file *os.File
	path string
	seq  int64
	log  *logger.Logger
}

// NewFileJournal abre (o crea) el archivo y recupera la secuencia escaneando
// todas las líneas y quedándose con el máximo seq visto. No asume que la
// última línea sea la más nueva ni que el archivo venga ordenado.
func NewFileJournal(path string, log *logger.Logger) (*FileJournal, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("abrir journal %s: %w", path, err)
	}
	j := &FileJournal{file: file, path: path, log: log}

	events, err := j.scan()
	if err != nil {
		file.Close()
		return nil, err
	}
	for _, ev := range events {
		if ev.Seq > j.seq {
			j.seq = ev.Seq
		}
	}
	log.Info().Str("path", path).Int64("seq", j.seq).Int("eventos", len(events)).
		Msg("journal abierto")
	return j, nil
}

// Append asigna identificador, secuencia y timestamp, escribe la línea y hace
// fsync antes de devolver. Es el último paso antes del commit de la unidad de
// trabajo que lo invoca.
func (j *FileJournal) Append(event *entity.LedgerEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.Seq = j.seq + 1
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	if _, err := j.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("anexar evento: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("sincronizar journal: %w", err)
	}
	j.seq = event.Seq
	return nil
}

// ReadAll devuelve todos los eventos en orden canónico de auditoría:
// timestamp descendente y, a igual timestamp, secuencia descendente.
func (j *FileJournal) ReadAll() ([]*entity.LedgerEvent, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	events, err := j.scan()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(a, b int) bool {
		if !events[a].CreatedAt.Equal(events[b].CreatedAt) {
			return events[a].CreatedAt.After(events[b].CreatedAt)
		}
		return events[a].Seq > events[b].Seq
	})
	return events, nil
}

// Close cierra el archivo subyacente.
func (j *FileJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// scan lee el archivo completo con un handle propio. Las líneas que no
// parsean se saltan con un warning: una línea corrupta no invalida el resto
// de la historia.
func (j *FileJournal) scan() ([]*entity.LedgerEvent, error) {
	f, err := os.Open(j.path)
	if err != nil {
		return nil, fmt.Errorf("leer journal %s: %w", j.path, err)
	}
	defer f.Close()

	var events []*entity.LedgerEvent
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev entity.LedgerEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			j.log.Warn().Str("path", j.path).Int("linea", lineNo).Err(err).
				Msg("línea de journal no parseable, se omite")
			continue
		}
		events = append(events, &ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("escanear journal %s: %w", j.path, err)
	}
	return events, nil
}
